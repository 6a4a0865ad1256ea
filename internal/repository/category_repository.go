package repository

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) ByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) ByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("name = ?", name).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Ancestors walks the parent chain root-ward by repeated id lookup. The
// domain disallows cycles, but a corrupted parent link must not hang a
// request, so visited ids terminate the walk.
func (r *CategoryRepository) Ancestors(id uint) ([]models.Category, error) {
	var chain []models.Category
	visited := map[uint]bool{id: true}

	current, err := r.ByID(id)
	if err != nil {
		return nil, err
	}

	for current != nil && current.ParentID != nil {
		parentID := *current.ParentID
		if visited[parentID] {
			break
		}
		visited[parentID] = true

		parent, err := r.ByID(parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			break
		}
		chain = append(chain, *parent)
		current = parent
	}

	return chain, nil
}
