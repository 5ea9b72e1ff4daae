package reconcile

import (
	"testing"
	"time"

	"jagakampung-backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func absen(tipe string, waktu time.Time, approved *bool) *model.Absensi {
	return &model.Absensi{Tipe: tipe, Waktu: waktu, Approved: approved}
}

var (
	hari = time.Date(2025, 11, 15, 0, 0, 0, 0, time.Local)
	now  = time.Date(2025, 11, 20, 12, 0, 0, 0, time.Local)
)

func TestDeriveTanpaRecord(t *testing.T) {
	// Hari lampau tanpa record = ALPHA
	assert.Equal(t, StatusAlpha, Derive(nil, nil, "21:00", hari, now))

	// Hari yang belum tiba = BELUM
	besok := now.AddDate(0, 0, 1)
	assert.Equal(t, StatusBelum, Derive(nil, nil, "21:00", besok, now))

	// Hari ini (belum berakhir) juga BELUM, bukan ALPHA
	assert.Equal(t, StatusBelum, Derive(nil, nil, "21:00", now, now))
}

func TestDeriveMasuk(t *testing.T) {
	tepat := hari.Add(20*time.Hour + 55*time.Minute) // 20:55
	telat := hari.Add(21*time.Hour + 5*time.Minute)  // 21:05

	assert.Equal(t, StatusMenunggu, Derive(absen(model.TipeMasuk, tepat, nil), nil, "21:00", hari, now))
	assert.Equal(t, StatusDitolak, Derive(absen(model.TipeMasuk, tepat, boolPtr(false)), nil, "21:00", hari, now))
	assert.Equal(t, StatusHadir, Derive(absen(model.TipeMasuk, tepat, boolPtr(true)), nil, "21:00", hari, now))
	assert.Equal(t, StatusTerlambat, Derive(absen(model.TipeMasuk, telat, boolPtr(true)), nil, "21:00", hari, now))
}

func TestDeriveLatenessBoundary(t *testing.T) {
	// Tepat 21:00:00 untuk jam masuk "21:00" = HADIR (perbandingan strictly-after)
	pas := hari.Add(21 * time.Hour)
	assert.Equal(t, StatusHadir, Derive(absen(model.TipeMasuk, pas, boolPtr(true)), nil, "21:00", hari, now))

	// Satu detik lewat = TERLAMBAT
	lewat := pas.Add(time.Second)
	assert.Equal(t, StatusTerlambat, Derive(absen(model.TipeMasuk, lewat, boolPtr(true)), nil, "21:00", hari, now))
}

func TestDeriveJamMasukKosong(t *testing.T) {
	// Jadwal tanpa jam masuk tidak pernah menghasilkan TERLAMBAT
	telat := hari.Add(23 * time.Hour)
	assert.Equal(t, StatusHadir, Derive(absen(model.TipeMasuk, telat, boolPtr(true)), nil, "", hari, now))
}

func TestDeriveIzin(t *testing.T) {
	waktu := hari.Add(18 * time.Hour)

	assert.Equal(t, StatusMenunggu, Derive(nil, absen(model.TipeIzin, waktu, nil), "21:00", hari, now))
	assert.Equal(t, StatusIzin, Derive(nil, absen(model.TipeIzin, waktu, boolPtr(true)), "21:00", hari, now))
	assert.Equal(t, StatusIzinDitolak, Derive(nil, absen(model.TipeIzin, waktu, boolPtr(false)), "21:00", hari, now))
}

func TestDeriveIzinMenangAtasMasuk(t *testing.T) {
	// Keadaan inkonsisten (izin + masuk di hari sama): izin yang menentukan status
	masuk := absen(model.TipeMasuk, hari.Add(21*time.Hour+5*time.Minute), boolPtr(true))
	izin := absen(model.TipeIzin, hari.Add(18*time.Hour), boolPtr(true))
	assert.Equal(t, StatusIzin, Derive(masuk, izin, "21:00", hari, now))
}

func TestKelompokkanPerHari(t *testing.T) {
	records := []model.Absensi{
		*absen(model.TipeMasuk, hari.Add(21*time.Hour), boolPtr(true)),
		*absen(model.TipePulang, hari.Add(23*time.Hour), nil),
		*absen(model.TipeIzin, hari.AddDate(0, 0, 1).Add(19*time.Hour), nil),
	}

	perHari := KelompokkanPerHari(records)
	assert.Len(t, perHari, 2)

	h := perHari["2025-11-15"]
	assert.NotNil(t, h.Masuk)
	assert.NotNil(t, h.Pulang)
	assert.Nil(t, h.Izin)

	assert.NotNil(t, perHari["2025-11-16"].Izin)
}

func TestKelompokkanRecordDitolakKalah(t *testing.T) {
	// Masuk yang ditolak lalu diabsen ulang: yang belum ditolaklah yang dipakai
	ditolak := *absen(model.TipeMasuk, hari.Add(21*time.Hour), boolPtr(false))
	ulang := *absen(model.TipeMasuk, hari.Add(21*time.Hour+30*time.Minute), nil)

	perHari := KelompokkanPerHari([]model.Absensi{ditolak, ulang})
	h := perHari["2025-11-15"]
	assert.Nil(t, h.Masuk.Approved)

	// Urutan input tidak berpengaruh
	perHari = KelompokkanPerHari([]model.Absensi{ulang, ditolak})
	assert.Nil(t, perHari["2025-11-15"].Masuk.Approved)
}

func TestHitungRekap(t *testing.T) {
	records := []model.Absensi{
		*absen(model.TipeMasuk, hari.Add(20*time.Hour+50*time.Minute), boolPtr(true)),              // HADIR
		*absen(model.TipeMasuk, hari.AddDate(0, 0, 1).Add(21*time.Hour+10*time.Minute), boolPtr(true)), // TERLAMBAT
		*absen(model.TipeIzin, hari.AddDate(0, 0, 2).Add(19*time.Hour), boolPtr(true)),             // IZIN
		*absen(model.TipeMasuk, hari.AddDate(0, 0, 3).Add(21*time.Hour), nil),                      // MENUNGGU
	}

	rekap := HitungRekap(KelompokkanPerHari(records), "21:00", now)
	assert.Equal(t, 1, rekap.Hadir)
	assert.Equal(t, 1, rekap.Terlambat)
	assert.Equal(t, 1, rekap.Izin)
	assert.Equal(t, 1, rekap.Menunggu)
	assert.Equal(t, 0, rekap.Ditolak)
}

func TestDeriveIdempoten(t *testing.T) {
	masuk := absen(model.TipeMasuk, hari.Add(21*time.Hour+5*time.Minute), boolPtr(true))
	pertama := Derive(masuk, nil, "21:00", hari, now)
	kedua := Derive(masuk, nil, "21:00", hari, now)
	assert.Equal(t, pertama, kedua)
	assert.Equal(t, StatusTerlambat, pertama)
}
