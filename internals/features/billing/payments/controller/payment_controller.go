// file: internals/features/billing/payments/controller/payment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	billModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	billService "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/service"
	dto "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/dto"
	model "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
	svc "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/service"
	helper "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

type PaymentController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================================================================
   Handlers
======================================================================= */

// GET /payments/bill/:billId — ledger for one bill, newest first, with
// the bill's balance figures embedded.
func (h *PaymentController) ListPaymentsByBill(c *fiber.Ctx) error {
	billID, err := uuid.Parse(c.Params("billId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid bill id")
	}

	var bill billModel.Bill
	if err := h.DB.WithContext(c.Context()).
		First(&bill, "bill_id = ?", billID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "bill not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var payments []model.Payment
	if err := h.DB.WithContext(c.Context()).
		Where("payment_bill_id = ?", billID).
		Order("payment_date DESC, payment_created_at DESC").
		Find(&payments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	summary := billSummary(&bill)
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		resp := dto.FromModel(&payments[i])
		resp.Bill = summary
		out = append(out, resp)
	}
	return c.JSON(out)
}

// POST /payments
func (h *PaymentController) CreatePayment(c *fiber.Ctx) error {
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	paymentDate, err := req.ParseDate()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	var payment *model.Payment
	var bill *billModel.Bill

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		payment, bill, err = svc.AddPayment(tx, req.BillID, req.Amount, paymentDate, req.CollectBy)
		return err
	}); err != nil {
		return paymentError(c, err)
	}

	resp := dto.FromModel(payment)
	resp.Bill = billSummary(bill)
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Payment added successfully", resp)
}

// DELETE /payments/:id
func (h *PaymentController) DeletePayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var bill *billModel.Bill
	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		bill, err = svc.RemovePayment(tx, id)
		return err
	}); err != nil {
		return paymentError(c, err)
	}

	return helper.Success(c, "Payment deleted successfully", fiber.Map{
		"id":   id,
		"bill": billSummary(bill),
	})
}

/* =======================================================================
   Helpers
======================================================================= */

// paymentError maps ledger-rule and lookup failures onto the envelope.
func paymentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, billService.ErrBillNotFound),
		errors.Is(err, svc.ErrPaymentNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, billService.ErrBillClosed):
		return helper.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, billService.ErrAmountExceedsRemain),
		errors.Is(err, billService.ErrAmountNotPositive),
		errors.Is(err, billService.ErrReverseOverflow):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
}

func billSummary(bill *billModel.Bill) *dto.BillSummary {
	return &dto.BillSummary{
		BillNumber:    bill.BillNumber,
		TotalAmount:   bill.BillTotalAmount,
		RemainPayment: bill.BillRemainPayment,
		Status:        string(bill.BillStatus),
	}
}
