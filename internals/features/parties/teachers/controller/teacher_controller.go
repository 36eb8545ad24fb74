// file: internals/features/parties/teachers/controller/teacher_controller.go
package controller

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/dto"
	model "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
	helper "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/helpers"
)

// exactly 10 digits, same gate the bill form applies
var mobileRe = regexp.MustCompile(`^\d{10}$`)

/* =======================================================================
   Controller
======================================================================= */

type TeacherController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{
		DB:        db,
		Validator: validator.New(),
	}
}

/* =======================================================================
   Handlers
======================================================================= */

// GET /teachers?mobile=0712345678&search=
func (h *TeacherController) ListTeachers(c *fiber.Ctx) error {
	// exact mobile lookup is the bill form's party gate: one hit or nothing
	if mobile := strings.TrimSpace(c.Query("mobile")); mobile != "" {
		if !mobileRe.MatchString(mobile) {
			return helper.Error(c, fiber.StatusBadRequest, "Mobile number must be exactly 10 digits")
		}
		var m model.Teacher
		if err := h.DB.WithContext(c.Context()).
			First(&m, "teacher_mobile = ?", mobile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusNotFound, "No teacher found with this mobile number")
			}
			return helper.Error(c, fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON([]dto.TeacherResponse{dto.FromModel(&m)})
	}

	q := h.DB.WithContext(c.Context()).Model(&model.Teacher{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where(
			"LOWER(teacher_name) LIKE ? OR teacher_mobile LIKE ? OR LOWER(teacher_school_name) LIKE ?",
			like, like, like,
		)
	}

	var teachers []model.Teacher
	if err := q.Order("teacher_name ASC").Find(&teachers).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromModels(teachers))
}

// GET /teachers/:id
func (h *TeacherController) GetTeacherByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Teacher
	if err := h.DB.WithContext(c.Context()).
		First(&m, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "teacher not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(dto.FromModel(&m))
}

// POST /teachers
func (h *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.Context()).Create(m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "create teacher failed: "+err.Error())
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Teacher added successfully", dto.FromModel(m))
}

// PUT /teachers/:id
func (h *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	var m model.Teacher
	if err := h.DB.WithContext(c.Context()).
		First(&m, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "teacher not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var patch dto.UpdateTeacherRequest
	if err := c.BodyParser(&patch); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(&patch); err != nil {
		return helper.ValidationError(c, err)
	}
	patch.Apply(&m)

	if err := h.DB.WithContext(c.Context()).Save(&m).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "save failed: "+err.Error())
	}
	return helper.Success(c, "Teacher updated successfully", dto.FromModel(&m))
}

// DELETE /teachers/:id
func (h *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid id")
	}
	res := h.DB.WithContext(c.Context()).Delete(&model.Teacher{}, "teacher_id = ?", id)
	if res.Error != nil {
		return helper.Error(c, fiber.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "teacher not found")
	}
	return helper.Success(c, "Teacher deleted successfully", fiber.Map{"id": id})
}
