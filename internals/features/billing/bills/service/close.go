// file: internals/features/billing/bills/service/close.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
)

var (
	ErrBillNotFound  = errors.New("bill not found")
	ErrAlreadyClosed = errors.New("bill is already closed")
)

// Close flips a bill to the Closed override. Must run inside the
// caller's transaction: the row is locked FOR UPDATE and only the
// status column is written, so a payment committed between the caller's
// earlier reads and this call can never have its balance clobbered.
func Close(tx *gorm.DB, billID uuid.UUID) (*model.Bill, error) {
	var bill model.Bill
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bill, "bill_id = ?", billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	if bill.BillStatus == model.BillStatusClosed {
		return nil, ErrAlreadyClosed
	}
	if err := tx.Model(&bill).Updates(map[string]interface{}{
		"bill_status":     model.BillStatusClosed,
		"bill_updated_at": time.Now(),
	}).Error; err != nil {
		return nil, err
	}
	bill.BillStatus = model.BillStatusClosed
	return &bill, nil
}
