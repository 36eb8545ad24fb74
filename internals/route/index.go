// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billRoute "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/route"
	paymentRoute "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/route"
	bookRoute "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/route"
	teacherRoute "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/route"
)

/* =======================================================================
   Route registration
======================================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	log.Println("📚 Registering book routes...")
	bookRoute.BookRoutes(api, db)

	log.Println("🧑‍🏫 Registering teacher routes...")
	teacherRoute.TeacherRoutes(api, db)

	log.Println("🧾 Registering bill routes...")
	billRoute.BillRoutes(api, db)

	log.Println("💰 Registering payment routes...")
	paymentRoute.PaymentRoutes(api, db)
}
