package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupGeocodeRoutes(app *fiber.App, _ *gorm.DB) {
	hdl := handler.NewGeocodeHandler()

	api := app.Group("/api/geocode", middleware.Auth)
	api.Get("/reverse", hdl.Reverse)
}
