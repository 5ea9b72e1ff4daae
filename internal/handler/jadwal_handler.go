package handler

import (
	"strconv"
	"time"

	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JadwalHandler struct {
	repo repository.JadwalRepository
}

func NewJadwalHandler(repo repository.JadwalRepository) *JadwalHandler {
	return &JadwalHandler{repo: repo}
}

// GetByBulan mengembalikan jadwal satu RT untuk bulan tertentu.
// 404 di sini adalah hasil normal (belum ada roster), bukan kegagalan.
func (h *JadwalHandler) GetByBulan(c *fiber.Ctx) error {
	rt := c.Params("rt")
	tahun, _ := strconv.Atoi(c.Params("tahun"))
	bulan, _ := strconv.Atoi(c.Params("bulan"))

	if bulan < 1 || bulan > 12 {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Bulan harus 1-12")
	}

	jadwal, err := h.repo.GetByBulan(rt, tahun, bulan)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, fiber.StatusNotFound, KindNotFound, "Belum ada jadwal untuk bulan ini")
		}
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil jadwal")
	}

	return c.JSON(fiber.Map{"data": jadwal})
}

type CreateJadwalRequest struct {
	RT       string `json:"rt" validate:"required"`
	Bulan    int    `json:"bulan" validate:"required,min=1,max=12"`
	Tahun    int    `json:"tahun" validate:"required,min=2020"`
	JamMasuk string `json:"jam_masuk"` // opsional, default "21:00"
}

// Create (admin) membuat container jadwal kosong. Idempoten: jika jadwal
// (rt, bulan, tahun) sudah ada, yang sudah ada yang dikembalikan.
func (h *JadwalHandler) Create(c *fiber.Ctx) error {
	var req CreateJadwalRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}
	if !model.RTValid(req.RT) {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "RT tidak dikenal")
	}

	jadwal, err := h.repo.GetOrCreate(req.RT, req.Bulan, req.Tahun)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal membuat jadwal")
	}

	if req.JamMasuk != "" && jadwal.JamMasuk != req.JamMasuk {
		if _, err := time.Parse("15:04", req.JamMasuk); err != nil {
			return jsonError(c, fiber.StatusBadRequest, KindValidation, "Format jam masuk harus HH:MM")
		}
		jadwal.JamMasuk = req.JamMasuk
		if err := h.repo.Update(jadwal); err != nil {
			return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyimpan jam masuk")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Jadwal siap digunakan",
		"data":    jadwal,
	})
}

func (h *JadwalHandler) Delete(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	if _, err := h.repo.GetByID(uint(id)); err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Jadwal tidak ditemukan")
	}

	// Hapus beserta entri dan absensi terkait (satu transaksi, tanpa orphan)
	if err := h.repo.Delete(uint(id)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menghapus jadwal")
	}
	return c.JSON(fiber.Map{"message": "Jadwal berhasil dihapus"})
}

type EntriRequest struct {
	NamaPetugas string `json:"nama_petugas" validate:"required"`
	Tanggal     int    `json:"tanggal" validate:"required,min=1,max=31"`
	Hari        string `json:"hari"`
	NoHP        string `json:"no_hp"`
	Catatan     string `json:"catatan"`
}

func (h *JadwalHandler) AddEntri(c *fiber.Ctx) error {
	jadwalID, _ := strconv.Atoi(c.Params("id"))

	var req EntriRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}

	if _, err := h.repo.GetByID(uint(jadwalID)); err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Jadwal tidak ditemukan")
	}

	entri := model.JadwalEntri{
		JadwalID:    uint(jadwalID),
		NamaPetugas: req.NamaPetugas,
		Tanggal:     req.Tanggal,
		Hari:        req.Hari,
		NoHP:        req.NoHP,
		Catatan:     req.Catatan,
	}

	if err := h.repo.AddEntri(&entri); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menambah entri jadwal")
	}

	return c.JSON(fiber.Map{"message": "Entri jadwal berhasil ditambahkan", "data": entri})
}

func (h *JadwalHandler) UpdateEntri(c *fiber.Ctx) error {
	jadwalID, _ := strconv.Atoi(c.Params("id"))
	entriID, _ := strconv.Atoi(c.Params("entriID"))

	var req EntriRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}

	entri, err := h.repo.GetEntriByID(uint(entriID))
	if err != nil || entri.JadwalID != uint(jadwalID) {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Entri jadwal tidak ditemukan")
	}

	if req.NamaPetugas != "" {
		entri.NamaPetugas = req.NamaPetugas
	}
	if req.Tanggal != 0 {
		entri.Tanggal = req.Tanggal
	}
	if req.Hari != "" {
		entri.Hari = req.Hari
	}
	if req.NoHP != "" {
		entri.NoHP = req.NoHP
	}
	if req.Catatan != "" {
		entri.Catatan = req.Catatan
	}

	if err := h.repo.UpdateEntri(entri); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal update entri jadwal")
	}

	return c.JSON(fiber.Map{"message": "Entri jadwal berhasil diupdate", "data": entri})
}

func (h *JadwalHandler) DeleteEntri(c *fiber.Ctx) error {
	jadwalID, _ := strconv.Atoi(c.Params("id"))
	entriID, _ := strconv.Atoi(c.Params("entriID"))

	entri, err := h.repo.GetEntriByID(uint(entriID))
	if err != nil || entri.JadwalID != uint(jadwalID) {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "Entri jadwal tidak ditemukan")
	}

	if err := h.repo.DeleteEntri(uint(entriID)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menghapus entri jadwal")
	}
	return c.JSON(fiber.Map{"message": "Entri jadwal berhasil dihapus"})
}

// GetPartnerHariIni mencari rekan ronda yang dijadwalkan hari ini di RT pemanggil.
// Daftar kosong adalah hasil normal ("tidak ada partner hari ini"), bukan error.
func (h *JadwalHandler) GetPartnerHariIni(c *fiber.Ctx) error {
	rt := userRT(c)
	nama, _ := c.Locals("nama").(string)

	now := time.Now()
	jadwal, err := h.repo.GetByBulan(rt, now.Year(), int(now.Month()))
	if err != nil {
		// Belum ada jadwal bulan ini = tidak ada partner
		return c.JSON(fiber.Map{"message": "Tidak ada partner ronda hari ini", "data": []model.JadwalEntri{}})
	}

	entri, err := h.repo.GetEntriByTanggal(jadwal.ID, now.Day())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil data partner")
	}

	// Keluarkan pemanggil sendiri dari daftar
	partners := make([]model.JadwalEntri, 0, len(entri))
	for _, e := range entri {
		if e.NamaPetugas == nama {
			continue
		}
		partners = append(partners, e)
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil partner ronda",
		"data":    partners,
	})
}
