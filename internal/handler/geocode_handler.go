package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GeocodeHandler memproxy reverse-geocoding ke Nominatim agar klien tidak
// perlu memanggil layanan luar langsung. Murni kenyamanan tampilan alamat.
type GeocodeHandler struct {
	client  *http.Client
	baseURL string
}

func NewGeocodeHandler() *GeocodeHandler {
	return &GeocodeHandler{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://nominatim.openstreetmap.org",
	}
}

func (h *GeocodeHandler) Reverse(c *fiber.Ctx) error {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Parameter lat dan lon wajib diisi")
	}

	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		h.baseURL, url.QueryEscape(lat), url.QueryEscape(lon))

	req, err := http.NewRequestWithContext(c.Context(), http.MethodGet, endpoint, nil)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menyusun request geocoding")
	}
	req.Header.Set("User-Agent", "jagakampung-backend")

	resp, err := h.client.Do(req)
	if err != nil {
		return jsonError(c, fiber.StatusBadGateway, KindInternal, "Layanan geocoding tidak bisa dihubungi")
	}
	defer resp.Body.Close()

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return jsonError(c, fiber.StatusBadGateway, KindInternal, "Jawaban geocoding tidak valid")
	}

	return c.JSON(fiber.Map{"data": fiber.Map{"alamat": body.DisplayName}})
}
