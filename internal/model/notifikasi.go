package model

import "gorm.io/gorm"

type Notifikasi struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"index;not null"`
	Judul  string `json:"judul"`
	Pesan  string `json:"pesan"`
	IsRead bool   `json:"is_read" gorm:"default:false"`
}
