package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billController "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/controller"
)

/*
Bill routes. Mounted under /api:
- GET   /api/bills[?search=&page=&per_page=]
- GET   /api/bills/:id
- GET   /api/bills/:id/reconcile
- POST  /api/bills/validate   (phase one: gate + summary)
- POST  /api/bills            (phase two: confirm + persist)
- PATCH /api/bills/:id/close
*/
func BillRoutes(r fiber.Router, db *gorm.DB) {
	ctl := billController.NewBillController(db)

	bills := r.Group("/bills")
	bills.Get("/", ctl.ListBills)
	bills.Post("/validate", ctl.ValidateBill)
	bills.Post("/", ctl.CreateBill)
	bills.Get("/:id", ctl.GetBillByID)
	bills.Get("/:id/reconcile", ctl.ReconcileBill)
	bills.Patch("/:id/close", ctl.CloseBill)
}
