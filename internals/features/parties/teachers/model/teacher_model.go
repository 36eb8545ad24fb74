// file: internals/features/parties/teachers/model/teacher_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — billed party (teacher + school)
============================================== */

type Teacher struct {
	// PK
	TeacherID uuid.UUID `gorm:"column:teacher_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	TeacherName string `gorm:"column:teacher_name;type:varchar(120);not null" json:"teacherName"`

	// 10-digit lookup key for bill entry; not enforced unique, the staff
	// treat it as a de facto key when searching
	TeacherMobile string `gorm:"column:teacher_mobile;type:varchar(10);not null;index" json:"mobile"`

	TeacherSchoolName string `gorm:"column:teacher_school_name;type:varchar(160);not null" json:"schoolName"`

	// Audit
	TeacherCreatedAt time.Time      `gorm:"column:teacher_created_at;type:timestamptz;not null;default:now()" json:"createdAt"`
	TeacherUpdatedAt time.Time      `gorm:"column:teacher_updated_at;type:timestamptz;not null;default:now()" json:"updatedAt"`
	TeacherDeletedAt gorm.DeletedAt `gorm:"column:teacher_deleted_at;type:timestamptz;index" json:"-"`
}

func (Teacher) TableName() string { return "teachers" }

/* ======================================
   HOOKS — normalize fields & timestamps
====================================== */

func (m *Teacher) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()

	m.TeacherName = strings.TrimSpace(m.TeacherName)
	m.TeacherMobile = strings.TrimSpace(m.TeacherMobile)
	m.TeacherSchoolName = strings.TrimSpace(m.TeacherSchoolName)
	if m.TeacherCreatedAt.IsZero() {
		m.TeacherCreatedAt = now
	}
	m.TeacherUpdatedAt = now
	return nil
}

func (m *Teacher) BeforeUpdate(tx *gorm.DB) (err error) {
	m.TeacherName = strings.TrimSpace(m.TeacherName)
	m.TeacherMobile = strings.TrimSpace(m.TeacherMobile)
	m.TeacherSchoolName = strings.TrimSpace(m.TeacherSchoolName)
	m.TeacherUpdatedAt = time.Now()
	return nil
}
