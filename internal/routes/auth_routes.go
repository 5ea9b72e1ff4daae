package routes

import (
	"jagakampung-backend/internal/handler"
	"jagakampung-backend/internal/middleware"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"
	"jagakampung-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	userRepo := repository.NewUserRepository(db)
	uc := usecase.NewAuthUsecase(userRepo)
	hdl := handler.NewAuthHandler(uc, userRepo)

	api := app.Group("/api/auth")

	api.Post("/register", hdl.Register)
	api.Post("/login", hdl.Login)

	api.Get("/profile", middleware.Auth, hdl.GetProfile)
	api.Put("/profile", middleware.Auth, hdl.UpdateProfile)

	// Manajemen warga (admin)
	api.Get("/users", middleware.Auth, middleware.Role(model.RoleAdmin), hdl.GetUsers)
	api.Put("/users/:id/status", middleware.Auth, middleware.Role(model.RoleAdmin), hdl.UpdateUserStatus)
}
