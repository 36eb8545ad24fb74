// file: cmd/seed/main.go
//
// One-off seeder for local development. Populates a handful of books and
// teachers so the bill workflow can be exercised against a fresh database.
//
//	go run ./cmd/seed
package main

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/configs"
	billModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	paymentModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
	bookModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/model"
	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

func main() {
	configs.LoadEnv()
	db := configs.InitSeederDB()

	if err := db.AutoMigrate(
		&bookModel.Book{},
		&teacherModel.Teacher{},
		&billModel.Bill{},
		&billModel.BillEntry{},
		&paymentModel.Payment{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	seedBooks(db)
	seedTeachers(db)

	log.Println("✅ Seeding finished.")
}

func seedBooks(db *gorm.DB) {
	books := []bookModel.Book{
		{BookName: "Grade 6 Mathematics", BookDefaultPrice: decimal.NewFromInt(450), BookIsActive: true},
		{BookName: "Grade 7 Science", BookDefaultPrice: decimal.NewFromInt(500), BookIsActive: true},
		{BookName: "Grade 8 English Workbook", BookDefaultPrice: decimal.NewFromInt(380), BookIsActive: true},
		{BookName: "Grade 9 History", BookDefaultPrice: decimal.NewFromInt(520), BookIsActive: true},
		{BookName: "O/L Past Papers 2019", BookDefaultPrice: decimal.NewFromInt(650), BookIsActive: false},
	}
	for i := range books {
		res := db.Where("book_name = ?", books[i].BookName).FirstOrCreate(&books[i])
		if res.Error != nil {
			log.Fatalf("❌ Seed book %q failed: %v", books[i].BookName, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("📚 Seeded book: %s", books[i].BookName)
		}
	}
}

func seedTeachers(db *gorm.DB) {
	teachers := []teacherModel.Teacher{
		{TeacherName: "Nimal Perera", TeacherMobile: "0712345678", TeacherSchoolName: "Ananda College"},
		{TeacherName: "Kumari Silva", TeacherMobile: "0779876543", TeacherSchoolName: "Visakha Vidyalaya"},
		{TeacherName: "Ruwan Jayasinghe", TeacherMobile: "0761112233", TeacherSchoolName: "Royal College"},
	}
	for i := range teachers {
		res := db.Where("teacher_mobile = ?", teachers[i].TeacherMobile).FirstOrCreate(&teachers[i])
		if res.Error != nil {
			log.Fatalf("❌ Seed teacher %q failed: %v", teachers[i].TeacherName, res.Error)
		}
		if res.RowsAffected > 0 {
			log.Printf("🧑‍🏫 Seeded teacher: %s", teachers[i].TeacherName)
		}
	}
}
