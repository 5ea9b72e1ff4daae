package repository

import (
	"jagakampung-backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JadwalRepository interface {
	GetByBulan(rt string, tahun, bulan int) (*model.Jadwal, error)
	GetByID(id uint) (*model.Jadwal, error)
	GetOrCreate(rt string, bulan, tahun int) (*model.Jadwal, error)
	Update(jadwal *model.Jadwal) error
	Delete(id uint) error
	AddEntri(entri *model.JadwalEntri) error
	GetEntriByID(id uint) (*model.JadwalEntri, error)
	UpdateEntri(entri *model.JadwalEntri) error
	DeleteEntri(id uint) error
	GetEntriByTanggal(jadwalID uint, tanggal int) ([]model.JadwalEntri, error)
	GetOlderThan(tahun, bulan int) ([]model.Jadwal, error)
}

type jadwalRepository struct {
	db *gorm.DB
}

func NewJadwalRepository(db *gorm.DB) JadwalRepository {
	return &jadwalRepository{db}
}

func (r *jadwalRepository) GetByBulan(rt string, tahun, bulan int) (*model.Jadwal, error) {
	var jadwal model.Jadwal
	// Gunakan Find + Limit(1) agar GORM tidak mencetak log error "record not found"
	err := r.db.Preload("Entri", func(db *gorm.DB) *gorm.DB {
		return db.Order("tanggal asc")
	}).Where("rt = ? AND tahun = ? AND bulan = ?", rt, tahun, bulan).Limit(1).Find(&jadwal).Error
	if err != nil {
		return nil, err
	}
	if jadwal.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &jadwal, nil
}

func (r *jadwalRepository) GetByID(id uint) (*model.Jadwal, error) {
	var jadwal model.Jadwal
	err := r.db.Preload("Entri").First(&jadwal, id).Error
	if err != nil {
		return nil, err
	}
	return &jadwal, nil
}

// GetOrCreate mengembalikan jadwal (rt, bulan, tahun), membuat container kosong
// bila belum ada. Aman terhadap request bersamaan: insert memakai OnConflict
// DoNothing di atas unique index, lalu dibaca ulang.
func (r *jadwalRepository) GetOrCreate(rt string, bulan, tahun int) (*model.Jadwal, error) {
	jadwal := model.Jadwal{RT: rt, Bulan: bulan, Tahun: tahun}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "rt"}, {Name: "bulan"}, {Name: "tahun"}},
		DoNothing: true,
	}).Create(&jadwal).Error
	if err != nil {
		return nil, err
	}
	return r.GetByBulan(rt, tahun, bulan)
}

func (r *jadwalRepository) Update(jadwal *model.Jadwal) error {
	return r.db.Omit("Entri").Save(jadwal).Error
}

// Delete menghapus jadwal beserta entri dan absensi terkait dalam satu transaksi
// agar tidak ada referensi menggantung. Hard delete (Unscoped): baris soft-deleted
// masih menduduki unique index (rt, bulan, tahun) dan memblokir pembuatan ulang
// jadwal bulan yang sama.
func (r *jadwalRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("jadwal_id = ?", id).Delete(&model.Absensi{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("jadwal_id = ?", id).Delete(&model.JadwalEntri{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Jadwal{}, id).Error
	})
}

func (r *jadwalRepository) AddEntri(entri *model.JadwalEntri) error {
	return r.db.Create(entri).Error
}

func (r *jadwalRepository) GetEntriByID(id uint) (*model.JadwalEntri, error) {
	var entri model.JadwalEntri
	err := r.db.First(&entri, id).Error
	if err != nil {
		return nil, err
	}
	return &entri, nil
}

func (r *jadwalRepository) UpdateEntri(entri *model.JadwalEntri) error {
	return r.db.Save(entri).Error
}

func (r *jadwalRepository) DeleteEntri(id uint) error {
	return r.db.Delete(&model.JadwalEntri{}, id).Error
}

func (r *jadwalRepository) GetEntriByTanggal(jadwalID uint, tanggal int) ([]model.JadwalEntri, error) {
	var entri []model.JadwalEntri
	err := r.db.Where("jadwal_id = ? AND tanggal = ?", jadwalID, tanggal).Order("nama_petugas asc").Find(&entri).Error
	return entri, err
}

// GetOlderThan mengembalikan jadwal sebelum (tahun, bulan). Dipakai cleaner.
func (r *jadwalRepository) GetOlderThan(tahun, bulan int) ([]model.Jadwal, error) {
	var jadwals []model.Jadwal
	err := r.db.Where("tahun < ? OR (tahun = ? AND bulan < ?)", tahun, tahun, bulan).Find(&jadwals).Error
	return jadwals, err
}
