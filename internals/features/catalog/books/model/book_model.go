// file: internals/features/catalog/books/model/book_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — catalog book with default unit price
============================================== */

type Book struct {
	// PK
	BookID uuid.UUID `gorm:"column:book_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	// Display name, unique among live rows
	BookName string `gorm:"column:book_name;type:varchar(120);not null;uniqueIndex:uniq_book_name,where:book_deleted_at IS NULL" json:"name"`

	// Default unit price, copied onto bill entries at billing time
	BookDefaultPrice decimal.Decimal `gorm:"column:book_default_price;type:decimal(12,2);not null;default:0;check:book_default_price >= 0" json:"defaultPrice"`

	// Soft-delete flag for the catalog screen; bills keep their own snapshot
	BookIsActive bool `gorm:"column:book_is_active;not null;default:true;index" json:"active"`

	// Audit
	BookCreatedAt time.Time      `gorm:"column:book_created_at;type:timestamptz;not null;default:now()" json:"createdAt"`
	BookUpdatedAt time.Time      `gorm:"column:book_updated_at;type:timestamptz;not null;default:now()" json:"updatedAt"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;type:timestamptz;index" json:"-"`
}

func (Book) TableName() string { return "books" }

/* ======================================
   HOOKS — normalize name & timestamps
====================================== */

func (m *Book) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()

	m.BookName = strings.TrimSpace(m.BookName)
	if m.BookCreatedAt.IsZero() {
		m.BookCreatedAt = now
	}
	m.BookUpdatedAt = now
	return nil
}

func (m *Book) BeforeUpdate(tx *gorm.DB) (err error) {
	m.BookName = strings.TrimSpace(m.BookName)
	m.BookUpdatedAt = time.Now()
	return nil
}
