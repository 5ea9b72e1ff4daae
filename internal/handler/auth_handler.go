package handler

import (
	"strconv"

	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"
	"jagakampung-backend/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	uc   *usecase.AuthUsecase
	repo repository.UserRepository
}

func NewAuthHandler(uc *usecase.AuthUsecase, repo repository.UserRepository) *AuthHandler {
	return &AuthHandler{uc: uc, repo: repo}
}

type RegisterRequest struct {
	Nama     string `json:"nama" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	NoHP     string `json:"no_hp"`
	RT       string `json:"rt" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}
	if !model.RTValid(req.RT) {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "RT tidak dikenal")
	}

	user, err := h.uc.Register(req.Nama, req.Email, req.Password, req.NoHP, req.RT)
	if err != nil {
		// Kemungkinan besar email sudah terdaftar (unique constraint)
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Pendaftaran gagal, email mungkin sudah terdaftar")
	}

	return c.JSON(fiber.Map{
		"message": "Pendaftaran berhasil. Menunggu aktivasi admin.",
		"data":    user,
	})
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Format data salah")
	}

	token, user, err := h.uc.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case usecase.ErrBelumAktif, usecase.ErrDiblokir:
			return jsonError(c, fiber.StatusForbidden, KindForbidden, err.Error())
		default:
			return jsonError(c, fiber.StatusUnauthorized, KindUnauthorized, "Email atau password salah")
		}
	}

	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"token":   token,
		"data": fiber.Map{
			"nama":  user.Nama,
			"email": user.Email,
			"rt":    user.RT,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.repo.FindByID(userID(c))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "User tidak ditemukan")
	}

	return c.JSON(fiber.Map{
		"message": "Berhasil mengambil profil",
		"data":    user,
	})
}

type UpdateProfileRequest struct {
	Nama string `json:"nama"`
	NoHP string `json:"no_hp"`
	Foto string `json:"foto"`
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}

	user, err := h.repo.FindByID(userID(c))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "User tidak ditemukan")
	}

	if req.Nama != "" {
		user.Nama = req.Nama
	}
	if req.NoHP != "" {
		user.NoHP = req.NoHP
	}
	if req.Foto != "" {
		user.Foto = req.Foto
	}

	if err := h.repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal update profil")
	}

	return c.JSON(fiber.Map{"message": "Profil berhasil diupdate", "data": user})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending banned"`
}

// UpdateUserStatus (admin): aktivasi pendaftar baru atau blokir user.
func (h *AuthHandler) UpdateUserStatus(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, "Data tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, KindValidation, err.Error())
	}

	user, err := h.repo.FindByID(uint(id))
	if err != nil {
		return jsonError(c, fiber.StatusNotFound, KindNotFound, "User tidak ditemukan")
	}

	user.Status = req.Status
	if err := h.repo.Update(user); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal update status user")
	}

	return c.JSON(fiber.Map{"message": "Status user berhasil diupdate", "data": user})
}

// GetUsers (admin): daftar seluruh warga untuk dashboard.
func (h *AuthHandler) GetUsers(c *fiber.Ctx) error {
	var (
		users []model.User
		err   error
	)
	if rt := c.Query("rt"); rt != "" {
		users, err = h.repo.GetByRT(rt)
	} else {
		users, err = h.repo.GetAll()
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil data user")
	}

	return c.JSON(fiber.Map{"data": users})
}
