package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/mailer"
	"jagakampung-backend/internal/middleware"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAbsensiRoutes(app *fiber.App, db *gorm.DB) {
	absensiRepo := repository.NewAbsensiRepository(db)
	jadwalRepo := repository.NewJadwalRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotifikasiRepository(db)
	hdl := handler.NewAbsensiHandler(absensiRepo, jadwalRepo, userRepo, notifRepo, mailer.NewFromEnv())

	api := app.Group("/api/absensi", middleware.Auth)

	api.Post("/", hdl.Create)
	api.Get("/riwayat", hdl.GetRiwayat)
	api.Get("/cek-hari-ini/:jadwalID", hdl.CekHariIni)
	api.Delete("/:id", hdl.Delete)

	admin := middleware.Role(model.RoleAdmin)
	api.Get("/pending", admin, hdl.GetPending)
	api.Put("/:id/approval", admin, hdl.Approval)
}
