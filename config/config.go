package config

import (
	"os"
	"strconv"
)

// Helper untuk mengambil environment variable dengan fallback default
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper untuk mengambil environment variable sebagai integer
func GetEnvAsInt(key string, fallback int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// JWTSecret dipakai oleh middleware auth dan usecase login.
// HARUS sama di seluruh aplikasi.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", "rahasia-kampung"))
}
