package handler

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jagakampung-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupJadwalApp(t *testing.T) (*fiber.App, *fakeJadwalRepo) {
	t.Helper()

	repo := newFakeJadwalRepo()
	hdl := NewJadwalHandler(repo)

	app := fiber.New()
	app.Use(injectUser(1, "Warga Satu", model.RoleAdmin, "04"))
	app.Get("/api/jadwal/bulan/:rt/:tahun/:bulan", hdl.GetByBulan)
	app.Get("/api/jadwal/partner-hari-ini", hdl.GetPartnerHariIni)
	app.Post("/api/jadwal", hdl.Create)
	app.Post("/api/jadwal/:id/entri", hdl.AddEntri)

	return app, repo
}

func TestGetByBulanBelumAda(t *testing.T) {
	app, _ := setupJadwalApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/jadwal/bulan/04/2025/11", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	out := decodeBody(t, map[string]any{}, resp.Body)
	assert.Equal(t, KindNotFound, out["kind"])
}

func TestCreateJadwalIdempoten(t *testing.T) {
	app, repo := setupJadwalApp(t)

	body := `{"rt":"04","bulan":11,"tahun":2025}`
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/jadwal", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Tetap satu jadwal untuk (rt, bulan, tahun) yang sama
	assert.Len(t, repo.jadwals, 1)
}

func TestCreateJadwalRTInvalid(t *testing.T) {
	app, _ := setupJadwalApp(t)

	req := httptest.NewRequest("POST", "/api/jadwal", strings.NewReader(`{"rt":"99","bulan":11,"tahun":2025}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestPartnerHariIniKosong(t *testing.T) {
	// Tanpa jadwal atau tanpa entri hari ini: sukses dengan daftar kosong
	app, _ := setupJadwalApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/jadwal/partner-hari-ini", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody(t, map[string]any{}, resp.Body)
	assert.Empty(t, out["data"])
}

func TestPartnerHariIniTanpaDiriSendiri(t *testing.T) {
	app, repo := setupJadwalApp(t)

	now := time.Now()
	jadwal := repo.tambah(&model.Jadwal{RT: "04", Bulan: int(now.Month()), Tahun: now.Year(), JamMasuk: "21:00"})
	repo.AddEntri(&model.JadwalEntri{JadwalID: jadwal.ID, NamaPetugas: "Warga Satu", Tanggal: now.Day()})
	repo.AddEntri(&model.JadwalEntri{JadwalID: jadwal.ID, NamaPetugas: "Warga Dua", Tanggal: now.Day()})
	repo.AddEntri(&model.JadwalEntri{JadwalID: jadwal.ID, NamaPetugas: "Warga Tiga", Tanggal: now.Day() % 28 + 1})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/jadwal/partner-hari-ini", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decodeBody(t, map[string]any{}, resp.Body)
	data := out["data"].([]any)
	assert.Len(t, data, 1)
	partner := data[0].(map[string]any)
	assert.Equal(t, "Warga Dua", partner["nama_petugas"])
}

func TestAddEntri(t *testing.T) {
	app, repo := setupJadwalApp(t)

	jadwal := repo.tambah(&model.Jadwal{RT: "04", Bulan: 11, Tahun: 2025})

	body := `{"nama_petugas":"Budi","tanggal":15,"hari":"Sabtu"}`
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/jadwal/%d/entri", jadwal.ID), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, repo.entri, 1)
}
