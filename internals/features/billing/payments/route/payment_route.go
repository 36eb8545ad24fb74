// file: internals/features/billing/payments/route/payment_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentController "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/controller"
	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/middlewares"
)

func PaymentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := paymentController.NewPaymentController(db)

	payments := r.Group("/payments")
	payments.Get("/bill/:billId", ctrl.ListPaymentsByBill)
	payments.Post("/", middlewares.PaymentRateLimiter(), ctrl.CreatePayment)
	payments.Delete("/:id", ctrl.DeletePayment)
}
