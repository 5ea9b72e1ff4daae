package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/middleware"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLaporanRoutes(app *fiber.App, db *gorm.DB) {
	jadwalRepo := repository.NewJadwalRepository(db)
	absensiRepo := repository.NewAbsensiRepository(db)
	userRepo := repository.NewUserRepository(db)
	hdl := handler.NewLaporanHandler(jadwalRepo, absensiRepo, userRepo)

	api := app.Group("/api/laporan", middleware.Auth, middleware.Role(model.RoleAdmin))

	api.Get("/rekap", hdl.GetRekap)
	api.Get("/export/excel", hdl.ExportExcel)
}
