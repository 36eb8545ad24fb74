package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/model"
)

/* =========================================================
   REQUEST DTOs (JSON keys follow the frontend payloads)
========================================================= */

type CreateBookRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=120"`
	DefaultPrice decimal.Decimal `json:"defaultPrice"`
}

// Validate covers the rules validator tags cannot express on decimal fields.
func (r *CreateBookRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.DefaultPrice.IsNegative() {
		return errors.New("defaultPrice cannot be negative")
	}
	return nil
}

func (r *CreateBookRequest) ToModel() *model.Book {
	return &model.Book{
		BookName:         strings.TrimSpace(r.Name),
		BookDefaultPrice: r.DefaultPrice.Round(2),
		BookIsActive:     true,
	}
}

type UpdateBookRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	DefaultPrice *decimal.Decimal `json:"defaultPrice,omitempty"`
	Active       *bool            `json:"active,omitempty"`
}

func (r *UpdateBookRequest) Apply(m *model.Book) error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		m.BookName = name
	}
	if r.DefaultPrice != nil {
		if r.DefaultPrice.IsNegative() {
			return errors.New("defaultPrice cannot be negative")
		}
		m.BookDefaultPrice = r.DefaultPrice.Round(2)
	}
	if r.Active != nil {
		m.BookIsActive = *r.Active
	}
	return nil
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type BookResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	DefaultPrice decimal.Decimal `json:"defaultPrice"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func FromModel(m *model.Book) BookResponse {
	return BookResponse{
		ID:           m.BookID,
		Name:         m.BookName,
		DefaultPrice: m.BookDefaultPrice,
		Active:       m.BookIsActive,
		CreatedAt:    m.BookCreatedAt,
		UpdatedAt:    m.BookUpdatedAt,
	}
}

func FromModels(ms []model.Book) []BookResponse {
	out := make([]BookResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
