package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "github.com/HarshanaAbeyrathne/sipsayuri-backend/internals/features/catalog/books/controller"
)

/*
Catalog routes. Mounted under /api:
- GET    /api/books[?active=true]
- GET    /api/books/:id
- POST   /api/books
- PUT    /api/books/:id
- DELETE /api/books/:id
*/
func BookRoutes(r fiber.Router, db *gorm.DB) {
	ctl := bookController.NewBookController(db)

	books := r.Group("/books")
	books.Get("/", ctl.ListBooks)
	books.Get("/:id", ctl.GetBookByID)
	books.Post("/", ctl.CreateBook)
	books.Put("/:id", ctl.UpdateBook)
	books.Delete("/:id", ctl.DeleteBook)
}
