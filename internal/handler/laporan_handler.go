package handler

import (
	"fmt"
	"strconv"
	"time"

	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/reconcile"
	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type LaporanHandler struct {
	jadwalRepo  repository.JadwalRepository
	absensiRepo repository.AbsensiRepository
	userRepo    repository.UserRepository
}

func NewLaporanHandler(jadwalRepo repository.JadwalRepository, absensiRepo repository.AbsensiRepository, userRepo repository.UserRepository) *LaporanHandler {
	return &LaporanHandler{jadwalRepo: jadwalRepo, absensiRepo: absensiRepo, userRepo: userRepo}
}

type barisRekap struct {
	UserID uint            `json:"user_id"`
	Nama   string          `json:"nama"`
	Rekap  reconcile.Rekap `json:"rekap"`
}

// susunRekap menghitung rekap bulanan per warga untuk satu RT, memakai state
// machine yang sama dengan tampilan kalender dan riwayat.
func (h *LaporanHandler) susunRekap(rt string, bulan, tahun int) ([]barisRekap, *model.Jadwal, error) {
	jadwal, err := h.jadwalRepo.GetByBulan(rt, tahun, bulan)
	if err != nil {
		return nil, nil, err
	}

	records, err := h.absensiRepo.GetByJadwal(jadwal.ID)
	if err != nil {
		return nil, nil, err
	}

	// Kelompokkan record per user dulu, baru per hari
	perUser := make(map[uint][]model.Absensi)
	namaUser := make(map[uint]string)
	for _, r := range records {
		perUser[r.UserID] = append(perUser[r.UserID], r)
		if r.User.ID != 0 {
			namaUser[r.UserID] = r.User.Nama
		}
	}

	now := time.Now()
	hasil := make([]barisRekap, 0, len(perUser))
	for uid, list := range perUser {
		nama := namaUser[uid]
		if nama == "" {
			if user, err := h.userRepo.FindByID(uid); err == nil {
				nama = user.Nama
			}
		}
		hasil = append(hasil, barisRekap{
			UserID: uid,
			Nama:   nama,
			Rekap:  reconcile.HitungRekap(reconcile.KelompokkanPerHari(list), jadwal.JamMasuk, now),
		})
	}
	return hasil, jadwal, nil
}

func (h *LaporanHandler) parseParams(c *fiber.Ctx) (string, int, int, error) {
	rt := c.Query("rt")
	bulan, _ := strconv.Atoi(c.Query("bulan"))
	tahun, _ := strconv.Atoi(c.Query("tahun"))
	if rt == "" || bulan < 1 || bulan > 12 || tahun == 0 {
		return "", 0, 0, fmt.Errorf("parameter rt, bulan, tahun wajib diisi")
	}
	return rt, bulan, tahun, nil
}

func (h *LaporanHandler) GetRekap(c *fiber.Ctx) error {
	rt, bulan, tahun, err := h.parseParams(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}

	hasil, jadwal, err := h.susunRekap(rt, bulan, tahun)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, fiber.StatusNotFound, KindNotFound, "Belum ada jadwal untuk bulan ini")
		}
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyusun rekap")
	}

	return c.JSON(fiber.Map{
		"message": "Rekap berhasil",
		"data": fiber.Map{
			"rt":     rt,
			"bulan":  bulan,
			"tahun":  tahun,
			"jadwal": jadwal.ID,
			"rekap":  hasil,
		},
	})
}

// ExportExcel mengunduh rekap bulanan sebagai file .xlsx.
func (h *LaporanHandler) ExportExcel(c *fiber.Ctx) error {
	rt, bulan, tahun, err := h.parseParams(c)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}

	hasil, _, err := h.susunRekap(rt, bulan, tahun)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return jsonError(c, fiber.StatusNotFound, KindNotFound, "Belum ada jadwal untuk bulan ini")
		}
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyusun rekap")
	}

	f := excelize.NewFile()
	sheet := "Rekap"
	// Rename sheet bawaan, jangan buat sheet baru lalu hapus: index hasil
	// NewSheet bergeser begitu Sheet1 dihapus.
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal membuat file Excel")
	}

	header := []string{"Nama", "Hadir", "Terlambat", "Izin", "Menunggu", "Ditolak", "Izin Ditolak"}
	for col, v := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}

	for row, b := range hasil {
		values := []any{b.Nama, b.Rekap.Hadir, b.Rekap.Terlambat, b.Rekap.Izin, b.Rekap.Menunggu, b.Rekap.Ditolak, b.Rekap.IzinDitolak}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "G", 12)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "G1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menulis file Excel")
	}

	filename := fmt.Sprintf("rekap-ronda-rt%s-%d-%02d.xlsx", rt, tahun, bulan)
	c.Set("Content-Disposition", "attachment; filename="+filename)
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
