package main

import (
	"fmt"
	"log"

	"jagakampung-backend/config"
	"jagakampung-backend/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("Memulai Database Seeding...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
	}

	config.ConnectDB()

	fmt.Println("Menjalankan SeedAll...")
	database.SeedAll(config.DB)

	fmt.Println("Seeding Selesai!")
}
