package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/model"
)

/* =========================================================
   REQUEST DTOs (JSON keys follow the frontend payloads)
========================================================= */

type CreateTeacherRequest struct {
	TeacherName string `json:"teacherName" validate:"required,min=1,max=120"`
	Mobile      string `json:"mobile" validate:"required,len=10,numeric"`
	SchoolName  string `json:"schoolName" validate:"required,min=1,max=160"`
}

func (r *CreateTeacherRequest) ToModel() *model.Teacher {
	return &model.Teacher{
		TeacherName:       strings.TrimSpace(r.TeacherName),
		TeacherMobile:     strings.TrimSpace(r.Mobile),
		TeacherSchoolName: strings.TrimSpace(r.SchoolName),
	}
}

type UpdateTeacherRequest struct {
	TeacherName *string `json:"teacherName,omitempty" validate:"omitempty,min=1,max=120"`
	Mobile      *string `json:"mobile,omitempty" validate:"omitempty,len=10,numeric"`
	SchoolName  *string `json:"schoolName,omitempty" validate:"omitempty,min=1,max=160"`
}

func (r *UpdateTeacherRequest) Apply(m *model.Teacher) {
	if r.TeacherName != nil {
		m.TeacherName = strings.TrimSpace(*r.TeacherName)
	}
	if r.Mobile != nil {
		m.TeacherMobile = strings.TrimSpace(*r.Mobile)
	}
	if r.SchoolName != nil {
		m.TeacherSchoolName = strings.TrimSpace(*r.SchoolName)
	}
}

/* =========================================================
   RESPONSE DTOs
========================================================= */

type TeacherResponse struct {
	ID          uuid.UUID `json:"id"`
	TeacherName string    `json:"teacherName"`
	Mobile      string    `json:"mobile"`
	SchoolName  string    `json:"schoolName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromModel(m *model.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:          m.TeacherID,
		TeacherName: m.TeacherName,
		Mobile:      m.TeacherMobile,
		SchoolName:  m.TeacherSchoolName,
		CreatedAt:   m.TeacherCreatedAt,
		UpdatedAt:   m.TeacherUpdatedAt,
	}
}

func FromModels(ms []model.Teacher) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
