// file: internals/features/billing/payments/service/ops.go
//
// Persistence side of the payment ledger. Every mutation must run
// inside the caller's transaction: the bill row is locked FOR UPDATE
// and its balance re-read before the arithmetic in bills/service runs,
// so a stale client-held remainPayment can never overshoot, and only
// the balance columns are written back.
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	billService "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/service"
	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
)

var ErrPaymentNotFound = errors.New("payment not found")

// AddPayment appends one ledger record and debits the bill balance.
func AddPayment(tx *gorm.DB, billID uuid.UUID, amount decimal.Decimal, date time.Time, collectBy string) (*model.Payment, *billModel.Bill, error) {
	bill, err := lockBill(tx, billID)
	if err != nil {
		return nil, nil, err
	}

	newRemain, err := billService.ApplyPayment(bill.BillRemainPayment, amount, bill.BillStatus)
	if err != nil {
		return nil, nil, err
	}

	payment := model.Payment{
		PaymentBillID:    bill.BillID,
		PaymentAmount:    amount.Round(2),
		PaymentDate:      date,
		PaymentCollectBy: collectBy,
	}
	if err := tx.Create(&payment).Error; err != nil {
		return nil, nil, err
	}
	if err := writeBalance(tx, bill, newRemain); err != nil {
		return nil, nil, err
	}
	return &payment, bill, nil
}

// RemovePayment soft-deletes one ledger record and credits the amount
// back onto the bill. A payment that is absent or already deleted is
// ErrPaymentNotFound; the bill balance is left untouched, so repeating
// the call can never credit twice.
func RemovePayment(tx *gorm.DB, paymentID uuid.UUID) (*billModel.Bill, error) {
	var payment model.Payment
	if err := tx.First(&payment, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	bill, err := lockBill(tx, payment.PaymentBillID)
	if err != nil {
		return nil, err
	}

	restored, err := billService.ReversePayment(
		bill.BillTotalAmount, bill.BillRemainPayment, payment.PaymentAmount, bill.BillStatus)
	if err != nil {
		return nil, err
	}

	res := tx.Delete(&model.Payment{}, "payment_id = ?", paymentID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// lost a race with a concurrent delete of the same payment
		return nil, ErrPaymentNotFound
	}

	if err := writeBalance(tx, bill, restored); err != nil {
		return nil, err
	}
	return bill, nil
}

func lockBill(tx *gorm.DB, billID uuid.UUID) (*billModel.Bill, error) {
	var bill billModel.Bill
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&bill, "bill_id = ?", billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billService.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

// writeBalance persists the new balance and derived status, touching
// only those columns.
func writeBalance(tx *gorm.DB, bill *billModel.Bill, remain decimal.Decimal) error {
	status := billService.DeriveStatus(bill.BillTotalAmount, remain, false)
	if err := tx.Model(bill).Updates(map[string]interface{}{
		"bill_remain_payment": remain,
		"bill_status":         status,
		"bill_updated_at":     time.Now(),
	}).Error; err != nil {
		return err
	}
	bill.BillRemainPayment = remain
	bill.BillStatus = status
	return nil
}
