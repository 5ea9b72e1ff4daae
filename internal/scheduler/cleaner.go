package scheduler

import (
	"log"
	"time"

	"jagakampung-backend/config"
	"jagakampung-backend/internal/repository"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartJadwalCleaner menjadwalkan pembersihan jadwal lama setiap malam.
// Pengganti skrip maintenance one-shot: jadwal yang lebih tua dari
// JADWAL_RETENSI_BULAN bulan dihapus beserta entri dan absensinya.
func StartJadwalCleaner(db *gorm.DB) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	spec := config.GetEnv("CLEANER_CRON", "0 3 * * *") // jam 3 pagi
	_, err := c.AddFunc(spec, func() {
		BersihkanJadwalLama(db)
	})
	if err != nil {
		log.Printf("Gagal mendaftarkan cron cleaner: %v", err)
		return c
	}

	c.Start()
	log.Printf("Jadwal cleaner aktif (cron %q)", spec)
	return c
}

// BersihkanJadwalLama menghapus jadwal sebelum batas retensi.
func BersihkanJadwalLama(db *gorm.DB) {
	retensi := config.GetEnvAsInt("JADWAL_RETENSI_BULAN", 12)
	batas := time.Now().AddDate(0, -retensi, 0)

	repo := repository.NewJadwalRepository(db)
	lama, err := repo.GetOlderThan(batas.Year(), int(batas.Month()))
	if err != nil {
		log.Printf("Gagal mencari jadwal lama: %v", err)
		return
	}

	if len(lama) == 0 {
		log.Println("Tidak ada jadwal lama yang perlu dibersihkan.")
		return
	}

	for _, jadwal := range lama {
		log.Printf("Menghapus jadwal lama RT %s %d-%02d (ID %d)", jadwal.RT, jadwal.Tahun, jadwal.Bulan, jadwal.ID)
		if err := repo.Delete(jadwal.ID); err != nil {
			log.Printf("Gagal menghapus jadwal ID %d: %v", jadwal.ID, err)
		}
	}
}
