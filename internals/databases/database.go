package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	billModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	paymentModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
	bookModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/model"
	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// Full URL DSN + statement_timeout.
	// Note: behind PgBouncer point host/port at the pooler and keep PreferSimpleProtocol=true
	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sipsayuri&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 works with PgBouncer transaction pooling
	}), &gorm.Config{
		TranslateError: true, // surface gorm.ErrDuplicatedKey etc. instead of raw pg errors
	})
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Migrate() {
	log.Println("🛠 Running migrations...")
	if err := DB.AutoMigrate(
		&bookModel.Book{},
		&teacherModel.Teacher{},
		&billModel.Bill{},
		&billModel.BillEntry{},
		&paymentModel.Payment{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migrations completed.")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
