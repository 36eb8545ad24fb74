package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	teacherController "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/parties/teachers/controller"
)

/*
Party directory routes. Mounted under /api:
- GET    /api/teachers[?mobile=|?search=]
- GET    /api/teachers/:id
- POST   /api/teachers
- PUT    /api/teachers/:id
- DELETE /api/teachers/:id
*/
func TeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := teacherController.NewTeacherController(db)

	teachers := r.Group("/teachers")
	teachers.Get("/", ctl.ListTeachers)
	teachers.Get("/:id", ctl.GetTeacherByID)
	teachers.Post("/", ctl.CreateTeacher)
	teachers.Put("/:id", ctl.UpdateTeacher)
	teachers.Delete("/:id", ctl.DeleteTeacher)
}
