package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/middleware"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupJadwalRoutes(app *fiber.App, db *gorm.DB) {
	jadwalRepo := repository.NewJadwalRepository(db)
	hdl := handler.NewJadwalHandler(jadwalRepo)

	api := app.Group("/api/jadwal", middleware.Auth)

	api.Get("/bulan/:rt/:tahun/:bulan", hdl.GetByBulan)
	api.Get("/partner-hari-ini", hdl.GetPartnerHariIni)

	admin := middleware.Role(model.RoleAdmin)
	api.Post("/", admin, hdl.Create)
	api.Delete("/:id", admin, hdl.Delete)
	api.Post("/:id/entri", admin, hdl.AddEntri)
	api.Put("/:id/entri/:entriID", admin, hdl.UpdateEntri)
	api.Delete("/:id/entri/:entriID", admin, hdl.DeleteEntri)
}
