package handler

import "github.com/gofiber/fiber/v2"

// Jenis error yang bisa dicek klien secara programatik, melengkapi pesan
// human-readable di field "error".
const (
	KindDuplicate           = "DUPLICATE_SUBMISSION"
	KindMissingPrerequisite = "MISSING_PREREQUISITE"
	KindValidation          = "VALIDATION_FAILED"
	KindNotFound            = "NOT_FOUND"
	KindUnauthorized        = "UNAUTHORIZED"
	KindForbidden           = "FORBIDDEN"
	KindUpload              = "UPLOAD_FAILED"
	KindInternal            = "INTERNAL"
)

func jsonError(c *fiber.Ctx, status int, kind, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"kind":  kind,
		"error": message,
	})
}

// userID mengambil identitas dari claims yang diset Auth middleware.
func userID(c *fiber.Ctx) uint {
	return uint(c.Locals("user_id").(float64))
}

func userRT(c *fiber.Ctx) string {
	rt, _ := c.Locals("rt").(string)
	return rt
}
