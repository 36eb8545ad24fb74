// file: internals/features/billing/bills/model/bill_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

/* ==============================
   ENUM — bill status
============================== */

type BillStatus string

const (
	BillStatusPending       BillStatus = "Pending"
	BillStatusPartiallyPaid BillStatus = "PartiallyPaid"
	BillStatusPaid          BillStatus = "Paid"
	// Closed is an administrative override, never balance-derived.
	BillStatusClosed BillStatus = "Closed"
)

// Digits-only bill numbers are persisted with this prefix.
const BillNumberPrefix = "BILL-"

/* ==============================================
   MODEL — bill header + owned line items
============================================== */

type Bill struct {
	// PK
	BillID uuid.UUID `gorm:"column:bill_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// Business identifier, stored as BILL-<digits>
	BillNumber string `gorm:"column:bill_number;type:varchar(30);not null;uniqueIndex:uniq_bill_number,where:bill_deleted_at IS NULL" json:"billNumber"`

	BillDate time.Time `gorm:"column:bill_date;type:date;not null" json:"date"`

	// FK → teachers(teacher_id)
	BillTeacherID uuid.UUID             `gorm:"column:bill_teacher_id;type:uuid;not null;index" json:"teacherId"`
	Teacher       *teacherModel.Teacher `gorm:"foreignKey:BillTeacherID;references:TeacherID" json:"teacher,omitempty"`

	// Party details frozen at billing time; later edits to the teacher
	// record never rewrite history
	BillTeacherSnapshot datatypes.JSON `gorm:"column:bill_teacher_snapshot;type:jsonb" json:"teacherSnapshot,omitempty"`

	// Derived money columns; persisted but always re-derivable from
	// entries and the payment ledger
	BillTotalAmount   decimal.Decimal `gorm:"column:bill_total_amount;type:decimal(12,2);not null;check:bill_total_amount >= 0" json:"totalAmount"`
	BillRemainPayment decimal.Decimal `gorm:"column:bill_remain_payment;type:decimal(12,2);not null;check:bill_remain_payment >= 0" json:"remainPayment"`

	BillStatus BillStatus `gorm:"column:bill_status;type:varchar(20);not null;default:'Pending';index" json:"status"`

	// Owned line items, fixed at creation
	Entries []BillEntry `gorm:"foreignKey:BillEntryBillID;references:BillID" json:"bookEntries"`

	// Audit
	BillCreatedAt time.Time      `gorm:"column:bill_created_at;type:timestamptz;not null;default:now();index" json:"createdAt"`
	BillUpdatedAt time.Time      `gorm:"column:bill_updated_at;type:timestamptz;not null;default:now()" json:"updatedAt"`
	BillDeletedAt gorm.DeletedAt `gorm:"column:bill_deleted_at;type:timestamptz;index" json:"-"`
}

func (Bill) TableName() string { return "bills" }

/* ==============================================
   MODEL — line item (copy-on-pick pricing)
============================================== */

type BillEntry struct {
	// PK
	BillEntryID uuid.UUID `gorm:"column:bill_entry_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// FK → bills(bill_id)
	BillEntryBillID uuid.UUID `gorm:"column:bill_entry_bill_id;type:uuid;not null;index" json:"-"`

	// The catalog book chosen, plus its name/price snapshotted at billing time
	BillEntryBookID   uuid.UUID       `gorm:"column:bill_entry_book_id;type:uuid;not null;index" json:"bookId"`
	BillEntryBookName string          `gorm:"column:bill_entry_book_name;type:varchar(120);not null" json:"bookName"`
	BillEntryPrice    decimal.Decimal `gorm:"column:bill_entry_price;type:decimal(12,2);not null;check:bill_entry_price > 0" json:"price"`

	BillEntryQuantity  int `gorm:"column:bill_entry_quantity;not null;check:bill_entry_quantity >= 1" json:"quantity"`
	BillEntryFreeIssue int `gorm:"column:bill_entry_free_issue;not null;default:0;check:bill_entry_free_issue >= 0" json:"freeIssue"`

	// Always price × quantity; freeIssue never participates
	BillEntryTotal decimal.Decimal `gorm:"column:bill_entry_total;type:decimal(12,2);not null" json:"total"`

	BillEntryCreatedAt time.Time `gorm:"column:bill_entry_created_at;type:timestamptz;not null;default:now()" json:"createdAt"`
}

func (BillEntry) TableName() string { return "bill_entries" }

/* ======================================
   HOOKS — prefix, defaults & timestamps
====================================== */

func (m *Bill) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()

	if m.BillStatus == "" {
		m.BillStatus = BillStatusPending
	}
	if !strings.HasPrefix(m.BillNumber, BillNumberPrefix) {
		m.BillNumber = BillNumberPrefix + m.BillNumber
	}
	if m.BillCreatedAt.IsZero() {
		m.BillCreatedAt = now
	}
	m.BillUpdatedAt = now
	return nil
}

func (m *Bill) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BillUpdatedAt = time.Now()
	return nil
}
