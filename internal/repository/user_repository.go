package repository

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) ByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// AdjustPostNum shifts the user's post counter by delta in place.
func (r *UserRepository) AdjustPostNum(id uint, delta int) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("post_num", gorm.Expr("post_num + ?", delta)).Error
}

// SoftDelete flags the user as deleted; the row is never removed.
func (r *UserRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}
