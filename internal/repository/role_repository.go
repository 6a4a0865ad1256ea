package repository

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type RoleRepository struct {
	db *gorm.DB
}

func (r *RoleRepository) ByName(name string) (*models.Role, error) {
	var role models.Role
	err := r.db.Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}

// EnsureByName creates the role if no row with that name exists yet. Running
// the seed enumeration through this is idempotent.
func (r *RoleRepository) EnsureByName(name string, weight int) error {
	existing, err := r.ByName(name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return r.db.Create(&models.Role{Name: name, Weight: weight}).Error
}
