package handler

import (
	"strconv"

	"jagakampung-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type NotifikasiHandler struct {
	repo repository.NotifikasiRepository
}

func NewNotifikasiHandler(repo repository.NotifikasiRepository) *NotifikasiHandler {
	return &NotifikasiHandler{repo: repo}
}

func (h *NotifikasiHandler) GetAll(c *fiber.Ctx) error {
	list, err := h.repo.GetByUser(userID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal mengambil notifikasi")
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *NotifikasiHandler) CountUnread(c *fiber.Ctx) error {
	count, err := h.repo.CountUnread(userID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menghitung notifikasi")
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread": count}})
}

func (h *NotifikasiHandler) MarkRead(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	if err := h.repo.MarkRead(uint(id), userID(c)); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, KindInternal, "Gagal menandai notifikasi")
	}
	return c.JSON(fiber.Map{"message": "Notifikasi ditandai sudah dibaca"})
}
