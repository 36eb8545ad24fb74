// file: internals/features/catalog/books/controller/book_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/dto"
	model "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/model"
	helper "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/helpers"
)

/* =======================================================================
   Controller
======================================================================= */

type BookController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================================================================
   Handlers
======================================================================= */

// GET /books?active=true
func (h *BookController) ListBooks(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.Context()).Model(&model.Book{})

	// the catalog screens pull ?active=true for bill entry dropdowns
	if strings.EqualFold(c.Query("active"), "true") {
		q = q.Where("book_is_active = TRUE")
	}

	var books []model.Book
	if err := q.Order("book_name ASC").Find(&books).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromModels(books))
}

// GET /books/:id
func (h *BookController) GetBookByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Book
	if err := h.DB.WithContext(c.Context()).
		First(&m, "book_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromModel(&m))
}

// POST /books
func (h *BookController) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := req.Validate(); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		if isDuplicate(err) {
			return helper.Error(c, fiber.StatusConflict, "a book with this name already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "create book failed: "+err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Book added successfully", dto.FromModel(m))
}

// PUT /books/:id
func (h *BookController) UpdateBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Book
	if err := h.DB.WithContext(c.Context()).
		First(&m, "book_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "book not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var patch dto.UpdateBookRequest
	if err := c.BodyParser(&patch); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&patch); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := patch.Apply(&m); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		if isDuplicate(err) {
			return helper.Error(c, fiber.StatusConflict, "a book with this name already exists")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "save failed: "+err.Error())
	}
	return helper.Success(c, "Book updated successfully", dto.FromModel(&m))
}

// DELETE /books/:id — deactivate only; existing bills keep their snapshot
func (h *BookController) DeleteBook(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.WithContext(c.Context()).
		Model(&model.Book{}).
		Where("book_id = ? AND book_is_active = TRUE", id).
		Update("book_is_active", false)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "book not found")
	}
	return helper.Success(c, "Book removed from catalog", fiber.Map{"id": id})
}

// unique violations arrive as gorm.ErrDuplicatedKey (TranslateError on)
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
