package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validDraft() *DraftBill {
	d := NewDraftBill()
	d.BillNumber = "1042"
	d.Date = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	d.Mobile = "0712345678"
	d.Entries[0].PickBook(uuid.New(), "Grade 6 Mathematics", dec("450.00"))
	d.Entries[0].SetQuantity(5)
	return d
}

func TestDraftEntryRecompute(t *testing.T) {
	e := &DraftEntry{}
	e.PickBook(uuid.New(), "Grade 7 Science", dec("500.00"))
	e.SetQuantity(3)

	if got, want := e.Total, dec("1500.00"); !got.Equal(want) {
		t.Fatalf("Total after SetQuantity = %s, want %s", got, want)
	}

	e.SetPrice(dec("480.00"))
	if got, want := e.Total, dec("1440.00"); !got.Equal(want) {
		t.Fatalf("Total after SetPrice = %s, want %s", got, want)
	}

	// free copies are handed out, not sold
	e.SetFreeIssue(2)
	if got, want := e.Total, dec("1440.00"); !got.Equal(want) {
		t.Fatalf("Total changed after SetFreeIssue: got %s, want %s", got, want)
	}

	e.SetPrice(dec("333.333"))
	if got, want := e.Price, dec("333.33"); !got.Equal(want) {
		t.Fatalf("Price not rounded to cents: got %s, want %s", got, want)
	}
}

func TestDraftEntryPickBookSnapshotsPrice(t *testing.T) {
	e := &DraftEntry{}
	e.SetQuantity(4)
	e.SetPrice(dec("999.00"))

	id := uuid.New()
	e.PickBook(id, "Grade 8 English Workbook", dec("380.00"))

	if e.BookID != id {
		t.Fatalf("BookID = %s, want %s", e.BookID, id)
	}
	if got, want := e.Price, dec("380.00"); !got.Equal(want) {
		t.Fatalf("PickBook did not reset price: got %s, want %s", got, want)
	}
	if got, want := e.Total, dec("1520.00"); !got.Equal(want) {
		t.Fatalf("Total = %s, want %s", got, want)
	}
}

func TestDraftBillTotalAmount(t *testing.T) {
	d := validDraft() // 450 × 5 = 2250
	e := d.AddEntry()
	e.PickBook(uuid.New(), "Grade 7 Science", dec("500.00"))
	e.SetQuantity(2) // 1000
	e.SetFreeIssue(1)

	if got, want := d.TotalAmount(), dec("3250.00"); !got.Equal(want) {
		t.Fatalf("TotalAmount = %s, want %s", got, want)
	}
}

func TestDraftBillValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *DraftBill)
		wantErr error
	}{
		{
			name:    "valid draft passes",
			mutate:  func(d *DraftBill) {},
			wantErr: nil,
		},
		{
			name:    "bill number with letters",
			mutate:  func(d *DraftBill) { d.BillNumber = "10A2" },
			wantErr: ErrBillNumberFormat,
		},
		{
			name:    "empty bill number",
			mutate:  func(d *DraftBill) { d.BillNumber = "" },
			wantErr: ErrBillNumberFormat,
		},
		{
			name:    "missing date",
			mutate:  func(d *DraftBill) { d.Date = time.Time{} },
			wantErr: ErrMissingDate,
		},
		{
			name:    "short mobile",
			mutate:  func(d *DraftBill) { d.Mobile = "07123" },
			wantErr: ErrMobileFormat,
		},
		{
			name:    "mobile with letters",
			mutate:  func(d *DraftBill) { d.Mobile = "07123abc78" },
			wantErr: ErrMobileFormat,
		},
		{
			name:    "no entries",
			mutate:  func(d *DraftBill) { d.Entries = nil },
			wantErr: ErrNoEntries,
		},
		{
			name:    "entry without book",
			mutate:  func(d *DraftBill) { d.Entries[0].BookID = uuid.Nil },
			wantErr: ErrEntryIncomplete,
		},
		{
			name:    "entry with zero quantity",
			mutate:  func(d *DraftBill) { d.Entries[0].SetQuantity(0) },
			wantErr: ErrEntryIncomplete,
		},
		{
			name:    "entry with zero price",
			mutate:  func(d *DraftBill) { d.Entries[0].SetPrice(decimal.Zero) },
			wantErr: ErrEntryIncomplete,
		},
		{
			name: "second incomplete entry rejects whole draft",
			mutate: func(d *DraftBill) {
				d.AddEntry() // stays blank
			},
			wantErr: ErrEntryIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			err := d.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidMobile(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0712345678", true},
		{" 0712345678 ", true},
		{"07123", false},
		{"07123456789", false},
		{"07123abc78", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidMobile(tt.in); got != tt.want {
			t.Errorf("ValidMobile(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDraftBillValidateForSubmit(t *testing.T) {
	d := validDraft()

	err := d.ValidateForSubmit(func(mobile string) bool { return false })
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Fatalf("unknown mobile: got %v, want %v", err, ErrTeacherNotFound)
	}

	var asked string
	err = d.ValidateForSubmit(func(mobile string) bool {
		asked = mobile
		return true
	})
	if err != nil {
		t.Fatalf("known mobile: got %v, want nil", err)
	}
	if asked != "0712345678" {
		t.Fatalf("lookup asked for %q, want %q", asked, "0712345678")
	}

	// shape gates run before the lookup fires
	d.Mobile = "123"
	called := false
	err = d.ValidateForSubmit(func(string) bool { called = true; return true })
	if !errors.Is(err, ErrMobileFormat) {
		t.Fatalf("got %v, want %v", err, ErrMobileFormat)
	}
	if called {
		t.Fatal("findTeacher called despite malformed mobile")
	}
}

func TestDraftBillRemoveEntry(t *testing.T) {
	d := validDraft()

	if err := d.RemoveEntry(0); !errors.Is(err, ErrLastEntry) {
		t.Fatalf("removing only entry: got %v, want %v", err, ErrLastEntry)
	}

	e := d.AddEntry()
	e.PickBook(uuid.New(), "Grade 9 History", dec("520.00"))
	e.SetQuantity(1)

	if err := d.RemoveEntry(5); err == nil {
		t.Fatal("out-of-range index accepted")
	}
	if err := d.RemoveEntry(0); err != nil {
		t.Fatalf("RemoveEntry(0) = %v", err)
	}
	if len(d.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(d.Entries))
	}
	if d.Entries[0].BookName != "Grade 9 History" {
		t.Fatalf("wrong entry removed, kept %q", d.Entries[0].BookName)
	}
}

func TestStoredBillNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1042", "BILL-1042"},
		{" 1042 ", "BILL-1042"},
		{"BILL-77", "BILL-77"},
	}
	for _, tt := range tests {
		d := &DraftBill{BillNumber: tt.in}
		if got := d.StoredBillNumber(); got != tt.want {
			t.Errorf("StoredBillNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToEntries(t *testing.T) {
	d := validDraft()
	d.Entries[0].SetFreeIssue(1)

	got := d.ToEntries()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	want := model.BillEntry{
		BillEntryBookID:    d.Entries[0].BookID,
		BillEntryBookName:  "Grade 6 Mathematics",
		BillEntryPrice:     dec("450.00"),
		BillEntryQuantity:  5,
		BillEntryFreeIssue: 1,
		BillEntryTotal:     dec("2250.00"),
	}
	e := got[0]
	if e.BillEntryBookID != want.BillEntryBookID ||
		e.BillEntryBookName != want.BillEntryBookName ||
		!e.BillEntryPrice.Equal(want.BillEntryPrice) ||
		e.BillEntryQuantity != want.BillEntryQuantity ||
		e.BillEntryFreeIssue != want.BillEntryFreeIssue ||
		!e.BillEntryTotal.Equal(want.BillEntryTotal) {
		t.Fatalf("ToEntries()[0] = %+v, want %+v", e, want)
	}
}
