package middleware

import (
	"strings"

	"jagakampung-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Auth(c *fiber.Ctx) error {
	// 1. Ambil token dari Header Authorization
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"kind": "UNAUTHORIZED", "error": "Token tidak ditemukan"})
	}

	// Format header: "Bearer <token>"
	tokenString := strings.Replace(authHeader, "Bearer ", "", 1)

	// 2. Parse dan validasi token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return config.JWTSecret(), nil
	})

	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"kind": "UNAUTHORIZED", "error": "Token tidak valid atau kadaluwarsa"})
	}

	// 3. Simpan data user (claims) ke context agar bisa dipakai di handler
	claims := token.Claims.(jwt.MapClaims)
	c.Locals("user_id", claims["user_id"])
	c.Locals("nama", claims["nama"])
	c.Locals("role", claims["role"])
	c.Locals("rt", claims["rt"])

	return c.Next()
}
