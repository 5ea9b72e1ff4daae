package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/middleware"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupNotifikasiRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewNotifikasiRepository(db)
	hdl := handler.NewNotifikasiHandler(repo)

	api := app.Group("/api/notifikasi", middleware.Auth)

	api.Get("/", hdl.GetAll)
	api.Get("/unread-count", hdl.CountUnread)
	api.Put("/:id/read", hdl.MarkRead)
}
