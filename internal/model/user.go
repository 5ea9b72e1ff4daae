package model

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	UserAktif   = "active"
	UserPending = "pending"
	UserBanned  = "banned"
)

type User struct {
	gorm.Model
	Nama     string `json:"nama"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password string `json:"-"`
	NoHP     string `json:"no_hp"`
	RT       string `json:"rt"` // "01".."06", partisi jadwal & absensi
	Role     string `json:"role" gorm:"default:user"`
	Status   string `json:"status" gorm:"default:pending"` // active/pending/banned
	Foto     string `json:"foto"`
}
