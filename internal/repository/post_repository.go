package repository

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"gorm.io/gorm"
)

type PostRepository struct {
	db *gorm.DB
}

// PostQuery describes one page of a filtered post listing. Order must be a
// key accepted by ValidPostOrder.
type PostQuery struct {
	Page       int
	PerPage    int
	CategoryID uint
	UploaderID uint
	Order      string
}

func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostRepository) Save(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *PostRepository) ByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// List returns one page of posts plus the total page count.
func (r *PostRepository) List(q PostQuery) ([]models.Post, int, error) {
	order, ok := postOrders[q.Order]
	if !ok {
		return nil, 0, errors.New("unsupported post order: " + q.Order)
	}

	query := r.db.Model(&models.Post{})
	if q.CategoryID != 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.UploaderID != 0 {
		query = query.Where("uploader_id = ?", q.UploaderID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.
		Order(order).
		Offset((q.Page - 1) * q.PerPage).
		Limit(q.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	totalPages := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	return posts, totalPages, nil
}

// AdjustLikeNum shifts the like counter by delta in place. The counter is a
// derived tally; the liked-set holds authoritative membership.
func (r *PostRepository) AdjustLikeNum(id uint, delta int) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		Update("like_num", gorm.Expr("like_num + ?", delta)).Error
}

// AdjustCommentNum shifts the comment counter by delta in place.
func (r *PostRepository) AdjustCommentNum(id uint, delta int) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		Update("comment_num", gorm.Expr("comment_num + ?", delta)).Error
}

// IncrementViewNum bumps the view counter in place.
func (r *PostRepository) IncrementViewNum(id uint) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		Update("view_num", gorm.Expr("view_num + 1")).Error
}

// SoftDelete flags the post as deleted; the row is never removed.
func (r *PostRepository) SoftDelete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
