// Package reconcile menurunkan status kehadiran harian dari record absensi.
// Satu-satunya implementasi state machine status; dipakai oleh cek-hari-ini,
// riwayat, rekap, dan export agar tidak ada dua salinan yang bisa drift.
package reconcile

import (
	"time"

	"jagakampung-backend/internal/model"
)

const (
	StatusHadir       = "HADIR"
	StatusTerlambat   = "TERLAMBAT"
	StatusMenunggu    = "MENUNGGU"
	StatusDitolak     = "DITOLAK"
	StatusIzin        = "IZIN"
	StatusIzinDitolak = "IZIN_DITOLAK"
	StatusAlpha       = "ALPHA" // hari sudah lewat tanpa record
	StatusBelum       = "BELUM" // hari belum tiba
)

// Harian adalah agregat record absensi satu user pada satu hari kalender.
type Harian struct {
	Masuk  *model.Absensi
	Pulang *model.Absensi
	Izin   *model.Absensi
}

// Derive menghitung status tampilan untuk satu hari.
// Urutan keputusan: izin selalu menang atas masuk; tanpa record sama sekali,
// hari lampau = ALPHA dan hari depan = BELUM.
// jamMasuk berformat "15:04" (mis. "21:00"); absen TEPAT pada jam tersebut
// dihitung HADIR, hanya yang lewat dari jam itu TERLAMBAT.
func Derive(masuk, izin *model.Absensi, jamMasuk string, hari, now time.Time) string {
	if izin != nil {
		switch {
		case izin.Ditolak():
			return StatusIzinDitolak
		case izin.Disetujui():
			return StatusIzin
		default:
			return StatusMenunggu
		}
	}

	if masuk != nil {
		switch {
		case masuk.Ditolak():
			return StatusDitolak
		case masuk.Disetujui():
			if Terlambat(masuk.Waktu, jamMasuk) {
				return StatusTerlambat
			}
			return StatusHadir
		default:
			return StatusMenunggu
		}
	}

	// Tanpa record: bedakan hari lampau dan hari yang belum tiba
	awalBesok := time.Date(hari.Year(), hari.Month(), hari.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if now.Before(awalBesok) {
		return StatusBelum
	}
	return StatusAlpha
}

// Terlambat membandingkan waktu absen dengan jam masuk jadwal pada hari yang sama.
// Perbandingan strictly-after: absen pukul 21:00:00 persis untuk jam masuk "21:00"
// bukan keterlambatan.
func Terlambat(waktu time.Time, jamMasuk string) bool {
	jam, err := time.Parse("15:04", jamMasuk)
	if err != nil {
		return false // jadwal tanpa jam masuk valid tidak pernah menghasilkan TERLAMBAT
	}
	batas := time.Date(waktu.Year(), waktu.Month(), waktu.Day(), jam.Hour(), jam.Minute(), 0, 0, waktu.Location())
	return waktu.After(batas)
}

// KelompokkanPerHari melipat daftar record menjadi map ber-key "2006-01-02".
// Record tipe sama di hari sama: yang belum ditolak menang atas yang ditolak,
// sisanya yang terbaru menang (toleransi terhadap data duplikat lama).
func KelompokkanPerHari(records []model.Absensi) map[string]*Harian {
	hasil := make(map[string]*Harian)
	for i := range records {
		r := &records[i]
		key := r.Waktu.Format("2006-01-02")
		h, ok := hasil[key]
		if !ok {
			h = &Harian{}
			hasil[key] = h
		}
		switch r.Tipe {
		case model.TipeMasuk:
			h.Masuk = pilih(h.Masuk, r)
		case model.TipePulang:
			h.Pulang = pilih(h.Pulang, r)
		case model.TipeIzin:
			h.Izin = pilih(h.Izin, r)
		}
	}
	return hasil
}

func pilih(lama, baru *model.Absensi) *model.Absensi {
	if lama == nil {
		return baru
	}
	if lama.Ditolak() && !baru.Ditolak() {
		return baru
	}
	if !lama.Ditolak() && baru.Ditolak() {
		return lama
	}
	if baru.Waktu.After(lama.Waktu) {
		return baru
	}
	return lama
}

// Rekap adalah counter status per user untuk laporan bulanan.
type Rekap struct {
	Hadir       int `json:"hadir"`
	Terlambat   int `json:"terlambat"`
	Izin        int `json:"izin"`
	Menunggu    int `json:"menunggu"`
	Ditolak     int `json:"ditolak"`
	IzinDitolak int `json:"izin_ditolak"`
}

// HitungRekap menjalankan Derive per hari dan menjumlahkan hasilnya.
func HitungRekap(perHari map[string]*Harian, jamMasuk string, now time.Time) Rekap {
	var rekap Rekap
	for key, h := range perHari {
		hari, err := time.ParseInLocation("2006-01-02", key, now.Location())
		if err != nil {
			continue
		}
		switch Derive(h.Masuk, h.Izin, jamMasuk, hari, now) {
		case StatusHadir:
			rekap.Hadir++
		case StatusTerlambat:
			rekap.Terlambat++
		case StatusIzin:
			rekap.Izin++
		case StatusMenunggu:
			rekap.Menunggu++
		case StatusDitolak:
			rekap.Ditolak++
		case StatusIzinDitolak:
			rekap.IzinDitolak++
		}
	}
	return rekap
}
