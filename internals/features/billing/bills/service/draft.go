// file: internals/features/billing/bills/service/draft.go
//
// DraftBill is the value object carried through the
// validate → summary → confirm pipeline. Nothing here touches the
// database; the controller resolves parties and books and persists.
package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
)

/* =========================================================
   Sentinel errors — callers branch on these with errors.Is
========================================================= */

var (
	ErrBillNumberFormat = errors.New("bill number must contain only digits")
	ErrMobileFormat     = errors.New("mobile number must be exactly 10 digits")
	ErrTeacherNotFound  = errors.New("no teacher found with this mobile number")
	ErrNoEntries        = errors.New("a bill needs at least one book entry")
	ErrEntryIncomplete  = errors.New("book entry is missing a book, a positive price or a positive quantity")
	ErrLastEntry        = errors.New("cannot delete the only book entry")
	ErrMissingDate      = errors.New("bill date is required")
)

var (
	billNumberRe = regexp.MustCompile(`^\d+$`)
	mobileRe     = regexp.MustCompile(`^\d{10}$`)
)

// ValidMobile reports whether s is an exactly-10-digit mobile number,
// the same gate Validate applies to a draft.
func ValidMobile(s string) bool {
	return mobileRe.MatchString(strings.TrimSpace(s))
}

/* =========================================================
   Draft entries
========================================================= */

type DraftEntry struct {
	BookID    uuid.UUID
	BookName  string
	Price     decimal.Decimal
	Quantity  int
	FreeIssue int
	Total     decimal.Decimal
}

// recompute keeps Total = Price × Quantity, rounded to cents.
// FreeIssue is informational and never participates.
func (e *DraftEntry) recompute() {
	e.Total = e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))).Round(2)
}

// PickBook overwrites the entry's book and snapshots the catalog price.
func (e *DraftEntry) PickBook(bookID uuid.UUID, bookName string, defaultPrice decimal.Decimal) {
	e.BookID = bookID
	e.BookName = bookName
	e.Price = defaultPrice.Round(2)
	e.recompute()
}

// SetPrice overrides the snapshotted price for this entry only.
func (e *DraftEntry) SetPrice(price decimal.Decimal) {
	e.Price = price.Round(2)
	e.recompute()
}

func (e *DraftEntry) SetQuantity(quantity int) {
	e.Quantity = quantity
	e.recompute()
}

// SetFreeIssue never triggers a recompute.
func (e *DraftEntry) SetFreeIssue(freeIssue int) {
	e.FreeIssue = freeIssue
}

func (e *DraftEntry) valid() bool {
	return e.BookID != uuid.Nil && e.Price.IsPositive() && e.Quantity > 0
}

/* =========================================================
   Draft bill
========================================================= */

type DraftBill struct {
	BillNumber string // digits only; prefixed at persist time
	Date       time.Time
	Mobile     string
	Entries    []DraftEntry
}

// NewDraftBill starts with a single blank entry, same as the form.
func NewDraftBill() *DraftBill {
	return &DraftBill{Entries: make([]DraftEntry, 1)}
}

func (d *DraftBill) AddEntry() *DraftEntry {
	d.Entries = append(d.Entries, DraftEntry{})
	return &d.Entries[len(d.Entries)-1]
}

// RemoveEntry rejects removing the last remaining entry.
func (d *DraftBill) RemoveEntry(i int) error {
	if i < 0 || i >= len(d.Entries) {
		return fmt.Errorf("entry index %d out of range", i)
	}
	if len(d.Entries) == 1 {
		return ErrLastEntry
	}
	d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
	return nil
}

// TotalAmount is the sum of entry totals, rounded to cents.
func (d *DraftBill) TotalAmount() decimal.Decimal {
	sum := decimal.Zero
	for i := range d.Entries {
		sum = sum.Add(d.Entries[i].Total)
	}
	return sum.Round(2)
}

// Validate runs every client-detectable gate. A draft with any invalid
// entry is rejected in full.
func (d *DraftBill) Validate() error {
	if !billNumberRe.MatchString(strings.TrimSpace(d.BillNumber)) {
		return ErrBillNumberFormat
	}
	if d.Date.IsZero() {
		return ErrMissingDate
	}
	if !mobileRe.MatchString(strings.TrimSpace(d.Mobile)) {
		return ErrMobileFormat
	}
	if len(d.Entries) == 0 {
		return ErrNoEntries
	}
	for i := range d.Entries {
		if !d.Entries[i].valid() {
			return fmt.Errorf("entry %d: %w", i+1, ErrEntryIncomplete)
		}
	}
	return nil
}

// ValidateForSubmit is the pre-create gate: shape checks plus the hard
// party lookup. findTeacher reports whether the mobile resolves to an
// existing teacher.
func (d *DraftBill) ValidateForSubmit(findTeacher func(mobile string) bool) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !findTeacher(strings.TrimSpace(d.Mobile)) {
		return ErrTeacherNotFound
	}
	return nil
}

// StoredBillNumber returns the persisted form, BILL-<digits>.
func (d *DraftBill) StoredBillNumber() string {
	n := strings.TrimSpace(d.BillNumber)
	if strings.HasPrefix(n, model.BillNumberPrefix) {
		return n
	}
	return model.BillNumberPrefix + n
}

// ToEntries converts the draft rows into owned bill entries.
func (d *DraftBill) ToEntries() []model.BillEntry {
	out := make([]model.BillEntry, 0, len(d.Entries))
	for i := range d.Entries {
		e := &d.Entries[i]
		out = append(out, model.BillEntry{
			BillEntryBookID:    e.BookID,
			BillEntryBookName:  e.BookName,
			BillEntryPrice:     e.Price,
			BillEntryQuantity:  e.Quantity,
			BillEntryFreeIssue: e.FreeIssue,
			BillEntryTotal:     e.Total,
		})
	}
	return out
}
