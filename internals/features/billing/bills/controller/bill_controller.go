// file: internals/features/billing/bills/controller/bill_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	dto "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/dto"
	model "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/model"
	svc "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/bills/service"
	paymentModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/billing/payments/model"
	bookModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/model"
	teacherModel "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
	helper "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

type BillController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================================================================
   Handlers
======================================================================= */

// POST /bills/validate — phase one of the two-phase commit: run every
// gate and return the summary for confirmation. Persists nothing.
func (h *BillController) ValidateBill(c *fiber.Ctx) error {
	draft, teacher, err := h.buildDraft(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.Success(c, "Bill is valid, please confirm", dto.BillSummaryResponse{
		BillNumber:  draft.StoredBillNumber(),
		Date:        draft.Date,
		Teacher:     dto.TeacherFromModel(teacher),
		BookEntries: summaryEntries(draft),
		TotalAmount: draft.TotalAmount(),
	})
}

// POST /bills — phase two: same gates, then persist bill + entries.
func (h *BillController) CreateBill(c *fiber.Ctx) error {
	draft, teacher, err := h.buildDraft(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	snapshot, _ := json.Marshal(fiber.Map{
		"teacherName": teacher.TeacherName,
		"mobile":      teacher.TeacherMobile,
		"schoolName":  teacher.TeacherSchoolName,
	})

	total := draft.TotalAmount()
	bill := model.Bill{
		BillNumber:          draft.StoredBillNumber(),
		BillDate:            draft.Date,
		BillTeacherID:       teacher.TeacherID,
		BillTeacherSnapshot: snapshot,
		BillTotalAmount:     total,
		BillRemainPayment:   total, // outstanding balance starts at the full total
		BillStatus:          model.BillStatusPending,
		Entries:             draft.ToEntries(),
	}

	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bill).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fiber.NewError(fiber.StatusConflict, "a bill with this number already exists")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "create bill failed: "+err.Error())
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	bill.Teacher = teacher
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Bill submitted successfully", dto.FromModel(&bill))
}

// GET /bills?search= — list with teacher preloaded; search matches bill
// number, teacher mobile or teacher name (the view-bills screen filter).
func (h *BillController) ListBills(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.Context()).Model(&model.Bill{}).
		Joins("JOIN teachers ON teachers.teacher_id = bills.bill_teacher_id")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(bills.bill_number) LIKE ? OR teachers.teacher_mobile LIKE ? OR LOWER(teachers.teacher_name) LIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var bills []model.Bill
	if err := q.
		Preload("Teacher").
		Preload("Entries").
		Order("bills.bill_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&bills).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":       dto.FromModels(bills),
		"pagination": helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage),
	})
}

// GET /bills/:id
func (h *BillController) GetBillByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var bill model.Bill
	if err := h.DB.WithContext(c.Context()).
		Preload("Teacher").
		Preload("Entries").
		First(&bill, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "bill not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromModel(&bill))
}

// PATCH /bills/:id/close — administrative override; suppresses all
// payment actions regardless of balance. Runs under a row lock and
// writes only the status column, so a payment committing concurrently
// never has its balance update clobbered.
func (h *BillController) CloseBill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}

	var bill *model.Bill
	if err := h.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		bill, err = svc.Close(tx, id)
		return err
	}); err != nil {
		switch {
		case errors.Is(err, svc.ErrBillNotFound):
			return helper.Error(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, svc.ErrAlreadyClosed):
			return helper.Error(c, fiber.StatusConflict, err.Error())
		default:
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
	}
	return helper.Success(c, "Bill closed", dto.FromModel(bill))
}

// GET /bills/:id/reconcile — consistency check of the persisted balance
// against the entry sum and the live payment ledger.
func (h *BillController) ReconcileBill(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var bill model.Bill
	if err := h.DB.WithContext(c.Context()).
		Preload("Entries").
		First(&bill, "bill_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "bill not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var payments []paymentModel.Payment
	if err := h.DB.WithContext(c.Context()).
		Find(&payments, "payment_bill_id = ?", bill.BillID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	amounts := make([]decimal.Decimal, 0, len(payments))
	paid := decimal.Zero
	for i := range payments {
		amounts = append(amounts, payments[i].PaymentAmount)
		paid = paid.Add(payments[i].PaymentAmount)
	}

	entrySum := svc.SumEntries(bill.Entries)
	report := fiber.Map{
		"billNumber":    bill.BillNumber,
		"totalAmount":   bill.BillTotalAmount,
		"remainPayment": bill.BillRemainPayment,
		"paidAmount":    paid.Round(2),
		"entrySum":      entrySum,
		"consistent":    true,
	}

	if !entrySum.Equal(bill.BillTotalAmount) {
		report["consistent"] = false
		report["problem"] = "totalAmount does not equal the sum of line-item totals"
	} else if err := svc.CheckConsistency(bill.BillTotalAmount, bill.BillRemainPayment, amounts); err != nil {
		report["consistent"] = false
		report["problem"] = err.Error()
	}
	return helper.Success(c, "Reconciliation report", report)
}

/* =======================================================================
   Helpers
======================================================================= */

// buildDraft parses the request, resolves the teacher and the catalog
// books, and runs the full submission gate. Errors come back as
// *fiber.Error ready for helper.FromFiberError.
func (h *BillController) buildDraft(c *fiber.Ctx) (*svc.DraftBill, *teacherModel.Teacher, error) {
	var req dto.CreateBillRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, "invalid bill payload: "+err.Error())
	}

	date, err := req.ParseDate()
	if err != nil {
		return nil, nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// Party gate: resolved id (confirm step) or mobile lookup (validate step)
	teacher, ferr := h.resolveTeacher(c, &req)
	if ferr != nil {
		return nil, nil, ferr
	}

	// Book lookups in one query; snapshot name + price per entry
	ids := make([]uuid.UUID, 0, len(req.BookEntries))
	for i := range req.BookEntries {
		ids = append(ids, req.BookEntries[i].BookID)
	}
	var books []bookModel.Book
	if err := h.DB.WithContext(c.Context()).Find(&books, "book_id IN ?", ids).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	byID := make(map[uuid.UUID]*bookModel.Book, len(books))
	for i := range books {
		byID[books[i].BookID] = &books[i]
	}

	draft := &svc.DraftBill{
		BillNumber: strings.TrimSpace(req.BillNumber),
		Date:       date,
		Mobile:     teacher.TeacherMobile,
	}
	for i := range req.BookEntries {
		e := &req.BookEntries[i]
		book, ok := byID[e.BookID]
		if !ok {
			return nil, nil, fiber.NewError(fiber.StatusNotFound, "book not found: "+e.BookID.String())
		}
		entry := svc.DraftEntry{}
		entry.PickBook(book.BookID, book.BookName, book.BookDefaultPrice)
		if e.Price != nil {
			entry.SetPrice(*e.Price)
		}
		entry.SetQuantity(e.Quantity)
		entry.SetFreeIssue(e.FreeIssue)
		draft.Entries = append(draft.Entries, entry)
	}

	if err := draft.ValidateForSubmit(func(string) bool { return teacher != nil }); err != nil {
		code := fiber.StatusBadRequest
		if errors.Is(err, svc.ErrTeacherNotFound) {
			code = fiber.StatusNotFound
		}
		return nil, nil, fiber.NewError(code, err.Error())
	}
	return draft, teacher, nil
}

func (h *BillController) resolveTeacher(c *fiber.Ctx, req *dto.CreateBillRequest) (*teacherModel.Teacher, *fiber.Error) {
	var teacher teacherModel.Teacher
	switch {
	case req.TeacherID != nil:
		if err := h.DB.WithContext(c.Context()).
			First(&teacher, "teacher_id = ?", *req.TeacherID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, svc.ErrTeacherNotFound.Error())
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	case strings.TrimSpace(req.Mobile) != "":
		// shape gate before the lookup: a malformed mobile is a client
		// error, not a missing teacher
		if !svc.ValidMobile(req.Mobile) {
			return nil, fiber.NewError(fiber.StatusBadRequest, svc.ErrMobileFormat.Error())
		}
		if err := h.DB.WithContext(c.Context()).
			First(&teacher, "teacher_mobile = ?", strings.TrimSpace(req.Mobile)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, svc.ErrTeacherNotFound.Error())
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "teacherId or mobile is required")
	}
	return &teacher, nil
}

func summaryEntries(draft *svc.DraftBill) []dto.BookEntryResponse {
	out := make([]dto.BookEntryResponse, 0, len(draft.Entries))
	for i := range draft.Entries {
		e := &draft.Entries[i]
		out = append(out, dto.BookEntryResponse{
			BookID:    e.BookID,
			BookName:  e.BookName,
			Price:     e.Price,
			Quantity:  e.Quantity,
			FreeIssue: e.FreeIssue,
			Total:     e.Total,
		})
	}
	return out
}
