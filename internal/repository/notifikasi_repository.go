package repository

import (
	"jagakampung-backend/internal/model"

	"gorm.io/gorm"
)

type NotifikasiRepository interface {
	Create(notifikasi *model.Notifikasi) error
	GetByUser(userID uint) ([]model.Notifikasi, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint) error
}

type notifikasiRepository struct {
	db *gorm.DB
}

func NewNotifikasiRepository(db *gorm.DB) NotifikasiRepository {
	return &notifikasiRepository{db}
}

func (r *notifikasiRepository) Create(notifikasi *model.Notifikasi) error {
	return r.db.Create(notifikasi).Error
}

func (r *notifikasiRepository) GetByUser(userID uint) ([]model.Notifikasi, error) {
	var list []model.Notifikasi
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Limit(50).Find(&list).Error
	return list, err
}

func (r *notifikasiRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notifikasi{}).Where("user_id = ? AND is_read = ?", userID, false).Count(&count).Error
	return count, err
}

func (r *notifikasiRepository) MarkRead(id, userID uint) error {
	return r.db.Model(&model.Notifikasi{}).Where("id = ? AND user_id = ?", id, userID).Update("is_read", true).Error
}
