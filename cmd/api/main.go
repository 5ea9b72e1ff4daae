package main

import (
	"fmt"

	"jagakampung-backend/config"
	"jagakampung-backend/internal/routes"
	"jagakampung-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("1. Memulai aplikasi... Mencoba load .env...")
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	fmt.Println("2. Mencoba koneksi ke Database...")
	config.ConnectDB()
	fmt.Println("3. Database berhasil terhubung! Menyiapkan routes...")

	app := fiber.New()

	// Middleware global
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	// Serve file statis (foto bukti absensi)
	app.Static("/uploads", "./uploads")

	routes.SetupAuthRoutes(app, config.DB)
	routes.SetupJadwalRoutes(app, config.DB)
	routes.SetupAbsensiRoutes(app, config.DB)
	routes.SetupNotifikasiRoutes(app, config.DB)
	routes.SetupLaporanRoutes(app, config.DB)
	routes.SetupGeocodeRoutes(app, config.DB)

	// Pembersihan jadwal lama tiap malam
	scheduler.StartJadwalCleaner(config.DB)

	port := config.GetEnv("PORT", "3000")
	fmt.Println("4. Server siap! Menunggu request di port :" + port)
	app.Listen(":" + port)
}
