package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	teacherDTO "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/dto"
	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

/* =========================================================
   REQUEST DTOs (payload shape fixed by the frontend)
========================================================= */

type BookEntryRequest struct {
	BookID uuid.UUID `json:"bookId" validate:"required"`
	// Price is optional: when omitted the book's current defaultPrice is
	// snapshotted (copy-on-pick); when present it overrides per entry.
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	FreeIssue int              `json:"freeIssue" validate:"omitempty,min=0"`
}

type CreateBillRequest struct {
	BillNumber string `json:"billNumber" validate:"required"`
	Date       string `json:"date" validate:"required"` // ISO-8601

	// Either the already-resolved teacher id (confirm step) or the
	// 10-digit mobile to resolve (validate step). At least one required.
	TeacherID *uuid.UUID `json:"teacherId,omitempty"`
	Mobile    string     `json:"mobile,omitempty"`

	BookEntries []BookEntryRequest `json:"bookEntries" validate:"required,min=1,dive"`
}

// ParseDate accepts a plain date or a full RFC3339 timestamp.
func (r *CreateBillRequest) ParseDate() (time.Time, error) {
	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("date must be ISO-8601 (YYYY-MM-DD)")
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type BookEntryResponse struct {
	ID        uuid.UUID       `json:"id"`
	BookID    uuid.UUID       `json:"bookId"`
	BookName  string          `json:"bookName"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	FreeIssue int             `json:"freeIssue"`
	Total     decimal.Decimal `json:"total"`
}

type BillResponse struct {
	ID            uuid.UUID                   `json:"id"`
	BillNumber    string                      `json:"billNumber"`
	Date          time.Time                   `json:"date"`
	TeacherID     uuid.UUID                   `json:"teacherId"`
	Teacher       *teacherDTO.TeacherResponse `json:"teacher,omitempty"`
	BookEntries   []BookEntryResponse         `json:"bookEntries"`
	TotalAmount   decimal.Decimal             `json:"totalAmount"`
	RemainPayment decimal.Decimal             `json:"remainPayment"`
	PaidAmount    decimal.Decimal             `json:"paidAmount"`
	Status        model.BillStatus            `json:"status"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

// BillSummaryResponse is the two-phase-commit summary shown before the
// final confirm; nothing is persisted when it is produced.
type BillSummaryResponse struct {
	BillNumber  string                     `json:"billNumber"`
	Date        time.Time                  `json:"date"`
	Teacher     teacherDTO.TeacherResponse `json:"teacher"`
	BookEntries []BookEntryResponse        `json:"bookEntries"`
	TotalAmount decimal.Decimal            `json:"totalAmount"`
}

func EntryFromModel(m *model.BillEntry) BookEntryResponse {
	return BookEntryResponse{
		ID:        m.BillEntryID,
		BookID:    m.BillEntryBookID,
		BookName:  m.BillEntryBookName,
		Price:     m.BillEntryPrice,
		Quantity:  m.BillEntryQuantity,
		FreeIssue: m.BillEntryFreeIssue,
		Total:     m.BillEntryTotal,
	}
}

func FromModel(m *model.Bill) BillResponse {
	entries := make([]BookEntryResponse, 0, len(m.Entries))
	for i := range m.Entries {
		entries = append(entries, EntryFromModel(&m.Entries[i]))
	}
	resp := BillResponse{
		ID:            m.BillID,
		BillNumber:    m.BillNumber,
		Date:          m.BillDate,
		TeacherID:     m.BillTeacherID,
		BookEntries:   entries,
		TotalAmount:   m.BillTotalAmount,
		RemainPayment: m.BillRemainPayment,
		PaidAmount:    m.BillTotalAmount.Sub(m.BillRemainPayment).Round(2),
		Status:        m.BillStatus,
		CreatedAt:     m.BillCreatedAt,
		UpdatedAt:     m.BillUpdatedAt,
	}
	if m.Teacher != nil {
		t := TeacherFromModel(m.Teacher)
		resp.Teacher = &t
	}
	return resp
}

func FromModels(ms []model.Bill) []BillResponse {
	out := make([]BillResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}

func TeacherFromModel(m *teacherModel.Teacher) teacherDTO.TeacherResponse {
	return teacherDTO.FromModel(m)
}
