package repository

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

// CommentQuery describes one page of a post's comment listing. Order must be
// a key accepted by ValidCommentOrder.
type CommentQuery struct {
	PostID  uint
	Page    int
	PerPage int
	Order   string
}

func (r *CommentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepository) Save(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *CommentRepository) ByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns one page of a post's comments plus the total page count.
func (r *CommentRepository) ListByPost(q CommentQuery) ([]models.Comment, int, error) {
	order, ok := commentOrders[q.Order]
	if !ok {
		return nil, 0, errors.New("unsupported comment order: " + q.Order)
	}

	query := r.db.Model(&models.Comment{}).Where("post_id = ?", q.PostID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	totalPages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	return comments, totalPages, nil
}

// SoftDelete flags the comment as deleted; replies stay attached to the
// flagged parent and remain readable.
func (r *CommentRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}
