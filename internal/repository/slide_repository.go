package repository

import (
	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type SlideRepository struct {
	db *gorm.DB
}

func (r *SlideRepository) Create(slide *models.Slide) error {
	return r.db.Create(slide).Error
}

// Top returns the first limit slides by display order.
func (r *SlideRepository) Top(limit int) ([]models.Slide, error) {
	var slides []models.Slide
	err := r.db.Order("display_order ASC").Limit(limit).Find(&slides).Error
	if err != nil {
		return nil, err
	}
	return slides, nil
}
