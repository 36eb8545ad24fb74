package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
)

/* =========================================================
   REQUEST DTOs (payload shape fixed by the collection screen)
========================================================= */

type CreatePaymentRequest struct {
	BillID      uuid.UUID       `json:"billId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	CollectBy   string          `json:"collectBy" validate:"omitempty,max=120"`
	PaymentDate string          `json:"paymentDate" validate:"required"` // ISO-8601
}

// ParseDate accepts a plain date or a full RFC3339 timestamp.
func (r *CreatePaymentRequest) ParseDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.PaymentDate); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, r.PaymentDate); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("paymentDate must be ISO-8601 (YYYY-MM-DD)")
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

// BillSummary rides along with each payment so the collection screen can
// refresh its balance figures without a second request.
type BillSummary struct {
	BillNumber    string          `json:"billNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	RemainPayment decimal.Decimal `json:"remainPayment"`
	Status        string          `json:"status"`
}

type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	BillID      uuid.UUID       `json:"billId"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"paymentDate"`
	CollectBy   string          `json:"collectBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	Bill        *BillSummary    `json:"bill,omitempty"`
}

func FromModel(m *model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          m.PaymentID,
		BillID:      m.PaymentBillID,
		Amount:      m.PaymentAmount,
		PaymentDate: m.PaymentDate,
		CollectBy:   m.PaymentCollectBy,
		CreatedAt:   m.PaymentCreatedAt,
	}
}
