package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	TipeMasuk  = "masuk"
	TipePulang = "pulang"
	TipeIzin   = "izin"
)

// Absensi adalah satu kejadian absen (check-in, check-out, atau izin).
// Approved tri-state: nil = menunggu, true = disetujui, false = ditolak.
type Absensi struct {
	gorm.Model
	JadwalID uint   `json:"jadwal_id" gorm:"index;not null"`
	UserID   uint   `json:"user_id" gorm:"index;not null"`
	Tipe     string `json:"tipe" gorm:"not null"` // masuk/pulang/izin

	Waktu time.Time `json:"waktu"` // timestamp kejadian
	Foto  string    `json:"foto"`  // path bukti foto, wajib untuk masuk/pulang

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Akurasi   float64 `json:"akurasi"`

	Alasan string `json:"alasan"` // wajib untuk izin

	Approved   *bool      `json:"approved"`
	ApprovedAt *time.Time `json:"approved_at"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}

// Ditolak melaporkan apakah record sudah ditolak admin.
func (a *Absensi) Ditolak() bool {
	return a.Approved != nil && !*a.Approved
}

// Disetujui melaporkan apakah record sudah disetujui admin.
func (a *Absensi) Disetujui() bool {
	return a.Approved != nil && *a.Approved
}
