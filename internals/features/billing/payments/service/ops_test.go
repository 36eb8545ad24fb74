package service

import (
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	billModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	billService "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/service"
	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

// testDB opens the database named by TEST_DATABASE_DSN, skipping the
// test when it is not set (the usual case on CI without Postgres).
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&teacherModel.Teacher{},
		&billModel.Bill{},
		&billModel.BillEntry{},
		&model.Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedBill creates a teacher and a pending bill with the given total,
// registering cleanup that hard-deletes everything it created.
func seedBill(t *testing.T, db *gorm.DB, total string) *billModel.Bill {
	t.Helper()

	teacher := teacherModel.Teacher{
		TeacherName:       "Test Teacher",
		TeacherMobile:     "0770000000",
		TeacherSchoolName: "Test College",
	}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatalf("seed teacher: %v", err)
	}

	amount := dec(total)
	bill := billModel.Bill{
		BillNumber:        fmt.Sprintf("%d", time.Now().UnixNano()),
		BillDate:          time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		BillTeacherID:     teacher.TeacherID,
		BillTotalAmount:   amount,
		BillRemainPayment: amount,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("seed bill: %v", err)
	}

	t.Cleanup(func() {
		db.Unscoped().Delete(&model.Payment{}, "payment_bill_id = ?", bill.BillID)
		db.Unscoped().Delete(&billModel.Bill{}, "bill_id = ?", bill.BillID)
		db.Unscoped().Delete(&teacherModel.Teacher{}, "teacher_id = ?", teacher.TeacherID)
	})
	return &bill
}

func reloadBill(t *testing.T, db *gorm.DB, bill *billModel.Bill) *billModel.Bill {
	t.Helper()
	var fresh billModel.Bill
	if err := db.First(&fresh, "bill_id = ?", bill.BillID).Error; err != nil {
		t.Fatalf("reload bill: %v", err)
	}
	return &fresh
}

func addPayment(t *testing.T, db *gorm.DB, bill *billModel.Bill, amount string) *model.Payment {
	t.Helper()
	var payment *model.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		payment, _, err = AddPayment(tx, bill.BillID, dec(amount), time.Now(), "tester")
		return err
	})
	if err != nil {
		t.Fatalf("add payment %s: %v", amount, err)
	}
	return payment
}

func TestRemovePaymentTwice(t *testing.T) {
	db := testDB(t)
	bill := seedBill(t, db, "2500.00")
	payment := addPayment(t, db, bill, "1000.00")

	if err := db.Transaction(func(tx *gorm.DB) error {
		_, err := RemovePayment(tx, payment.PaymentID)
		return err
	}); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	fresh := reloadBill(t, db, bill)
	if !fresh.BillRemainPayment.Equal(dec("2500.00")) {
		t.Fatalf("remain after delete = %s, want 2500.00", fresh.BillRemainPayment)
	}

	// second delete of the same payment: clean not-found, no double credit
	err := db.Transaction(func(tx *gorm.DB) error {
		_, err := RemovePayment(tx, payment.PaymentID)
		return err
	})
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("second delete: got %v, want %v", err, ErrPaymentNotFound)
	}
	fresh = reloadBill(t, db, bill)
	if !fresh.BillRemainPayment.Equal(dec("2500.00")) {
		t.Fatalf("remain after re-delete = %s, want 2500.00", fresh.BillRemainPayment)
	}
	if fresh.BillStatus != billModel.BillStatusPending {
		t.Fatalf("status after re-delete = %s, want %s", fresh.BillStatus, billModel.BillStatusPending)
	}
}

func TestCloseWritesOnlyStatus(t *testing.T) {
	db := testDB(t)
	bill := seedBill(t, db, "2500.00")
	addPayment(t, db, bill, "1000.00")

	// bill (stale in memory: remain still 2500) is closed by id; the
	// balance committed by the payment must survive
	if err := db.Transaction(func(tx *gorm.DB) error {
		_, err := billService.Close(tx, bill.BillID)
		return err
	}); err != nil {
		t.Fatalf("close: %v", err)
	}

	fresh := reloadBill(t, db, bill)
	if fresh.BillStatus != billModel.BillStatusClosed {
		t.Fatalf("status = %s, want %s", fresh.BillStatus, billModel.BillStatusClosed)
	}
	if !fresh.BillRemainPayment.Equal(dec("1500.00")) {
		t.Fatalf("remain after close = %s, want 1500.00", fresh.BillRemainPayment)
	}

	// payment actions are suppressed on the closed bill
	err := db.Transaction(func(tx *gorm.DB) error {
		_, _, err := AddPayment(tx, bill.BillID, dec("100.00"), time.Now(), "tester")
		return err
	})
	if !errors.Is(err, billService.ErrBillClosed) {
		t.Fatalf("payment on closed bill: got %v, want %v", err, billService.ErrBillClosed)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		_, err := billService.Close(tx, bill.BillID)
		return err
	})
	if !errors.Is(err, billService.ErrAlreadyClosed) {
		t.Fatalf("second close: got %v, want %v", err, billService.ErrAlreadyClosed)
	}
}

func TestDuplicateBillNumberTranslated(t *testing.T) {
	db := testDB(t)
	bill := seedBill(t, db, "1000.00")

	dup := billModel.Bill{
		BillNumber:        bill.BillNumber,
		BillDate:          bill.BillDate,
		BillTeacherID:     bill.BillTeacherID,
		BillTotalAmount:   dec("1000.00"),
		BillRemainPayment: dec("1000.00"),
	}
	err := db.Create(&dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate bill number: got %v, want %v", err, gorm.ErrDuplicatedKey)
	}
}
