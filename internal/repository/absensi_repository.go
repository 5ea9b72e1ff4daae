package repository

import (
	"errors"
	"time"

	"jagakampung-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSudahDiputuskan dikembalikan Decide bila record sudah punya keputusan.
var ErrSudahDiputuskan = errors.New("absensi sudah diputuskan")

type AbsensiRepository interface {
	// CreateChecked memvalidasi aturan duplikat/prasyarat lalu menyimpan record,
	// semuanya dalam satu transaksi. validasi menerima record hari yang sama
	// (sudah terkunci FOR UPDATE) dan boleh mengembalikan error untuk menolak.
	CreateChecked(absensi *model.Absensi, validasi func(hariIni []model.Absensi) error) error
	GetByID(id uint) (*model.Absensi, error)
	GetHariIni(jadwalID, userID uint, hari time.Time) ([]model.Absensi, error)
	GetRiwayat(userID uint) ([]model.Absensi, error)
	GetRiwayatBulan(userID uint, bulan, tahun int) ([]model.Absensi, error)
	GetPending() ([]model.Absensi, error)
	GetByJadwal(jadwalID uint) ([]model.Absensi, error)
	// Decide menulis keputusan admin hanya bila record masih menunggu.
	// Mengembalikan ErrSudahDiputuskan bila keputusan sudah ada.
	Decide(id uint, approved bool, decidedAt time.Time) error
	Delete(id uint) error
}

type absensiRepository struct {
	db *gorm.DB
}

func NewAbsensiRepository(db *gorm.DB) AbsensiRepository {
	return &absensiRepository{db}
}

func rentangHari(hari time.Time) (time.Time, time.Time) {
	awal := time.Date(hari.Year(), hari.Month(), hari.Day(), 0, 0, 0, 0, hari.Location())
	return awal, awal.AddDate(0, 0, 1)
}

func (r *absensiRepository) CreateChecked(absensi *model.Absensi, validasi func(hariIni []model.Absensi) error) error {
	awal, akhir := rentangHari(absensi.Waktu)
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Kunci baris hari ini agar dua submit bersamaan tidak lolos cek duplikat
		var hariIni []model.Absensi
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("jadwal_id = ? AND user_id = ? AND waktu >= ? AND waktu < ?",
				absensi.JadwalID, absensi.UserID, awal, akhir).
			Find(&hariIni).Error
		if err != nil {
			return err
		}
		if err := validasi(hariIni); err != nil {
			return err
		}
		return tx.Create(absensi).Error
	})
}

func (r *absensiRepository) GetByID(id uint) (*model.Absensi, error) {
	var absensi model.Absensi
	err := r.db.First(&absensi, id).Error
	if err != nil {
		return nil, err
	}
	return &absensi, nil
}

func (r *absensiRepository) GetHariIni(jadwalID, userID uint, hari time.Time) ([]model.Absensi, error) {
	awal, akhir := rentangHari(hari)
	var list []model.Absensi
	err := r.db.Where("jadwal_id = ? AND user_id = ? AND waktu >= ? AND waktu < ?",
		jadwalID, userID, awal, akhir).Find(&list).Error
	return list, err
}

func (r *absensiRepository) GetRiwayat(userID uint) ([]model.Absensi, error) {
	var list []model.Absensi
	err := r.db.Where("user_id = ?", userID).Order("waktu desc").Find(&list).Error
	return list, err
}

func (r *absensiRepository) GetRiwayatBulan(userID uint, bulan, tahun int) ([]model.Absensi, error) {
	awal := time.Date(tahun, time.Month(bulan), 1, 0, 0, 0, 0, time.Local)
	akhir := awal.AddDate(0, 1, 0)
	var list []model.Absensi
	err := r.db.Where("user_id = ? AND waktu >= ? AND waktu < ?", userID, awal, akhir).
		Order("waktu asc").Find(&list).Error
	return list, err
}

func (r *absensiRepository) GetPending() ([]model.Absensi, error) {
	var list []model.Absensi
	err := r.db.Preload("User").Where("approved IS NULL").Order("waktu asc").Find(&list).Error
	return list, err
}

func (r *absensiRepository) GetByJadwal(jadwalID uint) ([]model.Absensi, error) {
	var list []model.Absensi
	err := r.db.Preload("User").Where("jadwal_id = ?", jadwalID).Order("waktu asc").Find(&list).Error
	return list, err
}

// Decide memakai UPDATE kondisional, bukan read-then-save, supaya dua admin
// yang memutus record yang sama secara bersamaan tidak saling menimpa.
func (r *absensiRepository) Decide(id uint, approved bool, decidedAt time.Time) error {
	res := r.db.Model(&model.Absensi{}).
		Where("id = ? AND approved IS NULL", id).
		Updates(map[string]interface{}{"approved": approved, "approved_at": decidedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrSudahDiputuskan
	}
	return nil
}

func (r *absensiRepository) Delete(id uint) error {
	return r.db.Delete(&model.Absensi{}, id).Error
}
