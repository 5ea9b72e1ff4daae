package model

import "gorm.io/gorm"

// RTList adalah daftar RT yang dikenal sistem.
var RTList = []string{"01", "02", "03", "04", "05", "06"}

// RTValid melaporkan apakah rt ada di RTList.
func RTValid(rt string) bool {
	for _, r := range RTList {
		if r == rt {
			return true
		}
	}
	return false
}

// Jadwal adalah roster ronda bulanan per RT.
// Satu dokumen per (rt, bulan, tahun), dijamin oleh unique index.
type Jadwal struct {
	gorm.Model
	RT       string `json:"rt" gorm:"uniqueIndex:idx_jadwal_rt_bulan_tahun;not null"`
	Bulan    int    `json:"bulan" gorm:"uniqueIndex:idx_jadwal_rt_bulan_tahun"` // 1-12
	Tahun    int    `json:"tahun" gorm:"uniqueIndex:idx_jadwal_rt_bulan_tahun"`
	JamMasuk string `json:"jam_masuk" gorm:"default:'21:00'"` // jam mulai ronda, format "15:04"

	Entri []JadwalEntri `json:"entri" gorm:"foreignKey:JadwalID"`
}

// JadwalEntri adalah satu baris petugas pada roster.
type JadwalEntri struct {
	gorm.Model
	JadwalID    uint   `json:"jadwal_id" gorm:"index;not null"`
	NamaPetugas string `json:"nama_petugas" gorm:"not null"`
	Tanggal     int    `json:"tanggal"` // tanggal dalam bulan (1-31)
	Hari        string `json:"hari"`    // nama hari, display-only, tidak divalidasi terhadap tanggal
	NoHP        string `json:"no_hp"`
	Catatan     string `json:"catatan"`
}
