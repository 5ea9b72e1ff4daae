package usecase

import (
	"errors"
	"time"

	"jagakampung-backend/config"
	"jagakampung-backend/internal/model"
	"jagakampung-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrKredensialSalah = errors.New("email atau password salah")
	ErrBelumAktif      = errors.New("akun belum diaktifkan admin")
	ErrDiblokir        = errors.New("akun diblokir")
)

type AuthUsecase struct {
	repo repository.UserRepository
}

func NewAuthUsecase(repo repository.UserRepository) *AuthUsecase {
	return &AuthUsecase{repo: repo}
}

func (u *AuthUsecase) Register(nama, email, password, noHP, rt string) (*model.User, error) {
	// 1. Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// 2. Simpan; status pending sampai diaktifkan admin
	user := model.User{
		Nama:     nama,
		Email:    email,
		Password: string(hashedPassword),
		NoHP:     noHP,
		RT:       rt,
		Role:     model.RoleUser,
		Status:   model.UserPending,
	}
	if err := u.repo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *AuthUsecase) Login(email, password string) (string, *model.User, error) {
	// 1. Cari user berdasarkan email
	user, err := u.repo.FindByEmail(email)
	if err != nil {
		return "", nil, ErrKredensialSalah
	}

	// 2. Bandingkan password (input vs hash di DB)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrKredensialSalah
	}

	// 3. Tolak akun yang belum aktif / diblokir
	switch user.Status {
	case model.UserPending:
		return "", nil, ErrBelumAktif
	case model.UserBanned:
		return "", nil, ErrDiblokir
	}

	// 4. Buat token JWT
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"nama":    user.Nama,
		"role":    user.Role,
		"rt":      user.RT,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString(config.JWTSecret())
	if err != nil {
		return "", nil, err
	}

	return t, user, nil
}
