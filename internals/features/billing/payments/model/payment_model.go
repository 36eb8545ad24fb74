// file: internals/features/billing/payments/model/payment_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — payment ledger record against one bill
============================================== */

// Payment is immutable once created: the ledger only appends and
// soft-deletes, never edits amount or date.
type Payment struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// FK → bills(bill_id), fixed at creation
	PaymentBillID uuid.UUID `gorm:"column:payment_bill_id;type:uuid;not null;index" json:"billId"`

	PaymentAmount decimal.Decimal `gorm:"column:payment_amount;type:decimal(12,2);not null;check:payment_amount > 0" json:"amount"`

	PaymentDate time.Time `gorm:"column:payment_date;type:timestamptz;not null" json:"paymentDate"`

	// Free-text collector name from the collection screen
	PaymentCollectBy string `gorm:"column:payment_collect_by;type:varchar(120)" json:"collectBy"`

	// Audit
	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;type:timestamptz;not null;default:now();index" json:"createdAt"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;type:timestamptz;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }

func (m *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	m.PaymentCollectBy = strings.TrimSpace(m.PaymentCollectBy)
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = time.Now()
	}
	return nil
}
