// file: internals/features/billing/bills/service/ledger.go
//
// The reconciliation engine: every rule that keeps a bill's
// totalAmount, remainPayment and status consistent with its line items
// and payment ledger. Pure decimal arithmetic; persistence wraps these
// calls in a transaction with the bill row locked.
package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
)

var (
	ErrAmountNotPositive   = errors.New("payment amount must be greater than zero")
	ErrAmountExceedsRemain = errors.New("payment amount cannot exceed remaining payment")
	ErrBillClosed          = errors.New("bill is closed; payment actions are not allowed")
	ErrReverseOverflow     = errors.New("reversing this payment would exceed the bill total")
	ErrLedgerMismatch      = errors.New("bill balance does not reconcile with its payment ledger")
)

// DeriveStatus classifies a bill from its balance. Closed is a manual
// override and wins regardless of balance.
func DeriveStatus(total, remain decimal.Decimal, closed bool) model.BillStatus {
	if closed {
		return model.BillStatusClosed
	}
	switch {
	case remain.IsZero():
		return model.BillStatusPaid
	case remain.LessThan(total):
		return model.BillStatusPartiallyPaid
	default:
		return model.BillStatusPending
	}
}

// ApplyPayment validates amount against the freshly loaded remaining
// balance and returns the new balance. The caller must hold a row lock
// on the bill so two sessions cannot both pass a stale check.
func ApplyPayment(remain, amount decimal.Decimal, status model.BillStatus) (decimal.Decimal, error) {
	if status == model.BillStatusClosed {
		return remain, ErrBillClosed
	}
	if !amount.IsPositive() {
		return remain, ErrAmountNotPositive
	}
	if amount.GreaterThan(remain) {
		return remain, ErrAmountExceedsRemain
	}
	return remain.Sub(amount).Round(2), nil
}

// ReversePayment credits a deleted payment back onto the bill.
func ReversePayment(total, remain, amount decimal.Decimal, status model.BillStatus) (decimal.Decimal, error) {
	if status == model.BillStatusClosed {
		return remain, ErrBillClosed
	}
	if !amount.IsPositive() {
		return remain, ErrAmountNotPositive
	}
	restored := remain.Add(amount).Round(2)
	if restored.GreaterThan(total) {
		return remain, ErrReverseOverflow
	}
	return restored, nil
}

// SumEntries recomputes a bill total from its line items.
func SumEntries(entries []model.BillEntry) decimal.Decimal {
	sum := decimal.Zero
	for i := range entries {
		sum = sum.Add(entries[i].BillEntryTotal)
	}
	return sum.Round(2)
}

// CheckConsistency asserts totalAmount == remainPayment + Σ(live payments).
// The persisted balance is a view over the ledger, never independent truth.
func CheckConsistency(total, remain decimal.Decimal, payments []decimal.Decimal) error {
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p)
	}
	if !total.Equal(remain.Add(paid).Round(2)) {
		return fmt.Errorf("%w: total=%s remain=%s paid=%s",
			ErrLedgerMismatch, total.StringFixed(2), remain.StringFixed(2), paid.StringFixed(2))
	}
	return nil
}
