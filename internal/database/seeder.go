package database

import (
	"fmt"
	"time"

	"jagakampung-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll mengisi data awal: satu akun admin dan jadwal contoh bulan berjalan.
func SeedAll(db *gorm.DB) {
	seedAdmin(db)
	seedJadwalContoh(db)
}

func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count)
	if count > 0 {
		fmt.Println("Admin sudah ada, lewati.")
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := model.User{
		Nama:     "Admin Kampung",
		Email:    "admin@jagakampung.id",
		Password: string(hashed),
		RT:       "01",
		Role:     model.RoleAdmin,
		Status:   model.UserAktif,
	}

	if err := db.Create(&admin).Error; err != nil {
		fmt.Println("Gagal membuat admin:", err)
		return
	}
	fmt.Println("Admin dibuat: admin@jagakampung.id / admin123 (segera ganti!)")
}

func seedJadwalContoh(db *gorm.DB) {
	now := time.Now()

	var count int64
	db.Model(&model.Jadwal{}).Where("rt = ? AND bulan = ? AND tahun = ?", "01", int(now.Month()), now.Year()).Count(&count)
	if count > 0 {
		fmt.Println("Jadwal contoh sudah ada, lewati.")
		return
	}

	jadwal := model.Jadwal{
		RT:       "01",
		Bulan:    int(now.Month()),
		Tahun:    now.Year(),
		JamMasuk: "21:00",
		Entri: []model.JadwalEntri{
			{NamaPetugas: "Budi Santoso", Tanggal: 1, Hari: "Senin"},
			{NamaPetugas: "Agus Wijaya", Tanggal: 1, Hari: "Senin"},
			{NamaPetugas: "Slamet Riyadi", Tanggal: 2, Hari: "Selasa"},
		},
	}

	if err := db.Create(&jadwal).Error; err != nil {
		fmt.Println("Gagal membuat jadwal contoh:", err)
		return
	}
	fmt.Printf("Jadwal contoh RT 01 %d-%02d dibuat.\n", jadwal.Tahun, jadwal.Bulan)
}
