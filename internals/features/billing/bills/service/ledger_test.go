package service

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name   string
		total  string
		remain string
		closed bool
		want   model.BillStatus
	}{
		{"untouched bill", "2500.00", "2500.00", false, model.BillStatusPending},
		{"partly settled", "2500.00", "1500.00", false, model.BillStatusPartiallyPaid},
		{"fully settled", "2500.00", "0.00", false, model.BillStatusPaid},
		{"closed overrides balance", "2500.00", "1500.00", true, model.BillStatusClosed},
		{"closed overrides paid", "2500.00", "0.00", true, model.BillStatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveStatus(dec(tt.total), dec(tt.remain), tt.closed)
			if got != tt.want {
				t.Fatalf("DeriveStatus(%s, %s, %v) = %s, want %s",
					tt.total, tt.remain, tt.closed, got, tt.want)
			}
		})
	}
}

func TestApplyPayment(t *testing.T) {
	tests := []struct {
		name       string
		remain     string
		amount     string
		status     model.BillStatus
		wantRemain string
		wantErr    error
	}{
		{"first collection", "2500.00", "1000.00", model.BillStatusPending, "1500.00", nil},
		{"second collection settles", "1500.00", "1500.00", model.BillStatusPartiallyPaid, "0.00", nil},
		{"exceeds balance", "2500.00", "3000.00", model.BillStatusPending, "", ErrAmountExceedsRemain},
		{"exceeds after partial", "1500.00", "1500.01", model.BillStatusPartiallyPaid, "", ErrAmountExceedsRemain},
		{"zero amount", "2500.00", "0.00", model.BillStatusPending, "", ErrAmountNotPositive},
		{"negative amount", "2500.00", "-50.00", model.BillStatusPending, "", ErrAmountNotPositive},
		{"closed bill", "1500.00", "100.00", model.BillStatusClosed, "", ErrBillClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyPayment(dec(tt.remain), dec(tt.amount), tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.wantRemain)) {
				t.Fatalf("new remain = %s, want %s", got, tt.wantRemain)
			}
		})
	}
}

func TestApplyThenDeriveStatus(t *testing.T) {
	// a 2500 bill collected in two installments
	total := dec("2500.00")
	remain := total

	remain, err := ApplyPayment(remain, dec("1000.00"), model.BillStatusPending)
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if got := DeriveStatus(total, remain, false); got != model.BillStatusPartiallyPaid {
		t.Fatalf("after 1000: status = %s, want %s", got, model.BillStatusPartiallyPaid)
	}

	remain, err = ApplyPayment(remain, dec("1500.00"), model.BillStatusPartiallyPaid)
	if err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if !remain.IsZero() {
		t.Fatalf("remain = %s, want 0", remain)
	}
	if got := DeriveStatus(total, remain, false); got != model.BillStatusPaid {
		t.Fatalf("settled: status = %s, want %s", got, model.BillStatusPaid)
	}
}

func TestReversePayment(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		remain     string
		amount     string
		status     model.BillStatus
		wantRemain string
		wantErr    error
	}{
		{"reverse partial", "2500.00", "1500.00", "1000.00", model.BillStatusPartiallyPaid, "2500.00", nil},
		{"reverse from paid", "2500.00", "0.00", "1500.00", model.BillStatusPaid, "1500.00", nil},
		{"overflow past total", "2500.00", "2000.00", "1000.00", model.BillStatusPartiallyPaid, "", ErrReverseOverflow},
		{"zero amount", "2500.00", "1500.00", "0.00", model.BillStatusPartiallyPaid, "", ErrAmountNotPositive},
		{"closed bill", "2500.00", "1500.00", "1000.00", model.BillStatusClosed, "", ErrBillClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReversePayment(dec(tt.total), dec(tt.remain), dec(tt.amount), tt.status)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(dec(tt.wantRemain)) {
				t.Fatalf("restored remain = %s, want %s", got, tt.wantRemain)
			}
		})
	}
}

func TestSumEntries(t *testing.T) {
	entries := []model.BillEntry{
		{BillEntryTotal: dec("2250.00")},
		{BillEntryTotal: dec("1000.00")},
		{BillEntryTotal: dec("0.50")},
	}
	if got, want := SumEntries(entries), dec("3250.50"); !got.Equal(want) {
		t.Fatalf("SumEntries = %s, want %s", got, want)
	}
	if got := SumEntries(nil); !got.IsZero() {
		t.Fatalf("SumEntries(nil) = %s, want 0", got)
	}
}

func TestCheckConsistency(t *testing.T) {
	tests := []struct {
		name     string
		total    string
		remain   string
		payments []string
		wantErr  bool
	}{
		{"fresh bill no payments", "2500.00", "2500.00", nil, false},
		{"balanced ledger", "2500.00", "1500.00", []string{"1000.00"}, false},
		{"fully paid", "2500.00", "0.00", []string{"1000.00", "1500.00"}, false},
		{"remain drifted high", "2500.00", "2000.00", []string{"1000.00"}, true},
		{"remain drifted low", "2500.00", "1000.00", []string{"1000.00"}, true},
		{"orphaned payment", "2500.00", "2500.00", []string{"500.00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments := make([]decimal.Decimal, 0, len(tt.payments))
			for _, p := range tt.payments {
				payments = append(payments, dec(p))
			}
			err := CheckConsistency(dec(tt.total), dec(tt.remain), payments)
			if tt.wantErr {
				if !errors.Is(err, ErrLedgerMismatch) {
					t.Fatalf("err = %v, want %v", err, ErrLedgerMismatch)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
