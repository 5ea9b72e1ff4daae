package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"jagakampung-backend/internal/mailer"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/reconcile"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AbsensiHandler struct {
	repo       repository.AbsensiRepository
	jadwalRepo repository.JadwalRepository
	userRepo   repository.UserRepository
	notifRepo  repository.NotifikasiRepository
	mail       *mailer.Mailer // boleh nil jika SMTP tidak dikonfigurasi
}

func NewAbsensiHandler(repo repository.AbsensiRepository, jadwalRepo repository.JadwalRepository, userRepo repository.UserRepository, notifRepo repository.NotifikasiRepository, mail *mailer.Mailer) *AbsensiHandler {
	return &AbsensiHandler{repo: repo, jadwalRepo: jadwalRepo, userRepo: userRepo, notifRepo: notifRepo, mail: mail}
}

// Error sentinel dari closure validasi, dipetakan ke kind di handler.
var (
	errDuplikatMasuk  = errors.New("anda sudah absen masuk hari ini")
	errDuplikatPulang = errors.New("anda sudah absen pulang hari ini")
	errDuplikatIzin   = errors.New("anda sudah mengajukan izin hari ini")
	errBelumMasuk     = errors.New("anda belum absen masuk hari ini")
)

// Create menerima submit absensi (multipart): masuk/pulang wajib foto + lokasi,
// izin wajib alasan. Seluruh aturan duplikat dicek ulang di server di dalam
// satu transaksi, apapun yang sudah dicek klien.
func (h *AbsensiHandler) Create(c *fiber.Ctx) error {
	uid := userID(c)

	jadwalID, err := strconv.Atoi(c.FormValue("jadwal_id"))
	if err != nil || jadwalID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "jadwal_id wajib diisi")
	}

	tipe := c.FormValue("tipe")
	if tipe != model.TipeMasuk && tipe != model.TipePulang && tipe != model.TipeIzin {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Tipe absensi harus masuk/pulang/izin")
	}

	if _, err := h.jadwalRepo.GetByID(uint(jadwalID)); err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Jadwal tidak ditemukan")
	}

	absensi := model.Absensi{
		JadwalID: uint(jadwalID),
		UserID:   uid,
		Tipe:     tipe,
		Waktu:    time.Now(),
	}

	if tipe == model.TipeIzin {
		absensi.Alasan = c.FormValue("alasan")
		if absensi.Alasan == "" {
			return jsonError(c, fiber.StatusBadRequest, KindValidation, "Alasan izin wajib diisi")
		}
	} else {
		// 1. Lokasi wajib untuk masuk/pulang
		lat, errLat := strconv.ParseFloat(c.FormValue("latitude"), 64)
		lon, errLon := strconv.ParseFloat(c.FormValue("longitude"), 64)
		if errLat != nil || errLon != nil {
			return jsonError(c, fiber.StatusBadRequest, KindValidation, "Lokasi (latitude/longitude) wajib diisi")
		}
		absensi.Latitude = lat
		absensi.Longitude = lon
		absensi.Akurasi, _ = strconv.ParseFloat(c.FormValue("akurasi"), 64)

		// 2. Foto bukti wajib untuk masuk/pulang
		file, errFile := c.FormFile("foto")
		if errFile != nil {
			return jsonError(c, fiber.StatusBadRequest, KindValidation, "Foto bukti wajib diupload")
		}

		// Upload dulu, baru simpan record. Jika simpan gagal, file yatim
		// dibersihkan di bawah.
		pathFoto, err := simpanFoto(c, file)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, KindUpload, "Gagal menyimpan foto")
		}
		absensi.Foto = pathFoto
	}

	err = h.repo.CreateChecked(&absensi, func(hariIni []model.Absensi) error {
		return validasiSubmit(tipe, hariIni)
	})
	if err != nil {
		if absensi.Foto != "" {
			os.Remove(absensi.Foto)
		}
		switch err {
		case errDuplikatMasuk, errDuplikatPulang, errDuplikatIzin:
			return jsonError(c, fiber.StatusBadRequest, KindDuplicate, err.Error())
		case errBelumMasuk:
			return jsonError(c, fiber.StatusBadRequest, KindMissingPrerequisite, err.Error())
		default:
			return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyimpan absensi")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Absensi berhasil dikirim, menunggu persetujuan admin",
		"data":    absensi,
	})
}

// validasiSubmit memeriksa record hari yang sama: maksimal satu masuk dan satu
// pulang yang belum ditolak, pulang butuh masuk lebih dulu. Record yang sudah
// ditolak admin boleh disubmit ulang.
func validasiSubmit(tipe string, hariIni []model.Absensi) error {
	var adaMasuk, adaPulang, adaIzin bool
	for i := range hariIni {
		r := &hariIni[i]
		if r.Ditolak() {
			continue
		}
		switch r.Tipe {
		case model.TipeMasuk:
			adaMasuk = true
		case model.TipePulang:
			adaPulang = true
		case model.TipeIzin:
			adaIzin = true
		}
	}

	switch tipe {
	case model.TipeMasuk:
		if adaMasuk {
			return errDuplikatMasuk
		}
	case model.TipePulang:
		if !adaMasuk {
			return errBelumMasuk
		}
		if adaPulang {
			return errDuplikatPulang
		}
	case model.TipeIzin:
		if adaIzin {
			return errDuplikatIzin
		}
	}
	return nil
}

// simpanFoto menyimpan foto bukti ke disk lokal dengan nama acak dan
// mengembalikan path-nya. File dilayani statis lewat /uploads.
func simpanFoto(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	uploadDir := "./uploads/absensi"
	if _, err := os.Stat(uploadDir); os.IsNotExist(err) {
		os.MkdirAll(uploadDir, 0755)
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	path := filepath.Join(uploadDir, filename)

	if err := c.SaveFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// hariRiwayat adalah satu hari kalender pada tampilan riwayat/kalender.
type hariRiwayat struct {
	Tanggal string         `json:"tanggal"`
	Status  string         `json:"status"`
	Masuk   *model.Absensi `json:"masuk"`
	Pulang  *model.Absensi `json:"pulang"`
	Izin    *model.Absensi `json:"izin"`
}

func sortRiwayat(hasil []hariRiwayat) {
	sort.Slice(hasil, func(i, j int) bool {
		return hasil[i].Tanggal > hasil[j].Tanggal
	})
}

// CekHariIni mengembalikan triple {masuk, pulang, izin} user hari ini untuk
// satu jadwal, plus status turunannya.
func (h *AbsensiHandler) CekHariIni(c *fiber.Ctx) error {
	uid := userID(c)
	jadwalID, _ := strconv.Atoi(c.Params("jadwalID"))

	jadwal, err := h.jadwalRepo.GetByID(uint(jadwalID))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Jadwal tidak ditemukan")
	}

	now := time.Now()
	records, err := h.repo.GetHariIni(uint(jadwalID), uid, now)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil data absensi")
	}

	perHari := reconcile.KelompokkanPerHari(records)
	harian := perHari[now.Format("2006-01-02")]
	if harian == nil {
		harian = &reconcile.Harian{}
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil status hari ini",
		"status":  reconcile.Derive(harian.Masuk, harian.Izin, jadwal.JamMasuk, now, now),
		"data": fiber.Map{
			"masuk":  harian.Masuk,
			"pulang": harian.Pulang,
			"izin":   harian.Izin,
		},
	})
}

// GetRiwayat mengembalikan riwayat absensi user, dikelompokkan per hari dengan
// status hasil state machine yang sama dengan tampilan kalender.
func (h *AbsensiHandler) GetRiwayat(c *fiber.Ctx) error {
	uid := userID(c)
	bulan, _ := strconv.Atoi(c.Query("bulan"))
	tahun, _ := strconv.Atoi(c.Query("tahun"))

	var (
		records []model.Absensi
		err     error
	)
	if bulan >= 1 && bulan <= 12 && tahun > 0 {
		records, err = h.repo.GetRiwayatBulan(uid, bulan, tahun)
	} else {
		records, err = h.repo.GetRiwayat(uid)
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil riwayat")
	}

	now := time.Now()
	perHari := reconcile.KelompokkanPerHari(records)

	// Jam masuk bisa berbeda antar jadwal; cache per jadwal
	jamMasuk := make(map[uint]string)
	ambilJam := func(jadwalID uint) string {
		if jam, ok := jamMasuk[jadwalID]; ok {
			return jam
		}
		jam := ""
		if jadwal, err := h.jadwalRepo.GetByID(jadwalID); err == nil {
			jam = jadwal.JamMasuk
		}
		jamMasuk[jadwalID] = jam
		return jam
	}

	hasil := make([]hariRiwayat, 0, len(perHari))
	for key, harian := range perHari {
		hari, errHari := time.ParseInLocation("2006-01-02", key, now.Location())
		if errHari != nil {
			continue
		}

		jam := ""
		if harian.Masuk != nil {
			jam = ambilJam(harian.Masuk.JadwalID)
		}

		hasil = append(hasil, hariRiwayat{
			Tanggal: key,
			Status:  reconcile.Derive(harian.Masuk, harian.Izin, jam, hari, now),
			Masuk:   harian.Masuk,
			Pulang:  harian.Pulang,
			Izin:    harian.Izin,
		})
	}

	sortRiwayat(hasil)

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil riwayat",
		"data":    hasil,
	})
}

// Delete menghapus satu record milik user sendiri. Admin tidak punya endpoint
// hapus; penolakan dilakukan lewat approval.
func (h *AbsensiHandler) Delete(c *fiber.Ctx) error {
	uid := userID(c)
	id, _ := strconv.Atoi(c.Params("id"))

	absensi, err := h.repo.GetByID(uint(id))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Absensi tidak ditemukan")
	}
	if absensi.UserID != uid {
		return jsonError(c, fiber.StatusForbidden, KindForbidden, "Anda hanya bisa menghapus absensi sendiri")
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menghapus absensi")
	}
	if absensi.Foto != "" {
		os.Remove(absensi.Foto)
	}

	return c.JSON(fiber.Map{"message": "Absensi berhasil dihapus"})
}

// GetPending (admin): seluruh record yang menunggu keputusan.
func (h *AbsensiHandler) GetPending(c *fiber.Ctx) error {
	list, err := h.repo.GetPending()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil data pending")
	}
	return c.JSON(fiber.Map{"data": list})
}

type ApprovalRequest struct {
	Approved *bool `json:"approved"`
}

// Approval (admin): MENUNGGU -> disetujui/ditolak. Keputusan final; record yang
// sudah diputus tidak bisa dibuka kembali.
func (h *AbsensiHandler) Approval(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req ApprovalRequest
	if err := c.BodyParser(&req); err != nil || req.Approved == nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Field approved (true/false) wajib diisi")
	}

	absensi, err := h.repo.GetByID(uint(id))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Absensi tidak ditemukan")
	}

	// UPDATE kondisional di repository; keputusan kedua (termasuk dari admin
	// lain yang menang balapan) ditolak di sini, bukan lewat cek baca-dulu.
	now := time.Now()
	if err := h.repo.Decide(uint(id), *req.Approved, now); err != nil {
		if errors.Is(err, repository.ErrSudahDiputuskan) {
			return jsonError(c, fiber.StatusConflict, KindMissingPrerequisite, "Absensi sudah diputuskan dan tidak bisa diubah")
		}
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyimpan keputusan")
	}
	absensi.Approved = req.Approved
	absensi.ApprovedAt = &now

	// Notifikasi dibuat sinkron saat keputusan diambil; klien tinggal polling
	keputusan := "ditolak"
	if *req.Approved {
		keputusan = "disetujui"
	}
	judul := "Absensi " + keputusan
	pesan := fmt.Sprintf("Absensi %s Anda pada %s telah %s admin.",
		absensi.Tipe, absensi.Waktu.Format("2006-01-02"), keputusan)

	if err := h.notifRepo.Create(&model.Notifikasi{UserID: absensi.UserID, Judul: judul, Pesan: pesan}); err != nil {
		fmt.Println("Gagal membuat notifikasi:", err)
	}

	if h.mail != nil {
		if user, err := h.userRepo.FindByID(absensi.UserID); err == nil && user.Email != "" {
			go h.mail.Send(user.Email, judul, pesan)
		}
	}

	return c.JSON(fiber.Map{"message": "Keputusan berhasil disimpan", "data": absensi})
}
