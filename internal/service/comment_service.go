package service

import (
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/pkg/logger"
	"go.uber.org/zap"
)

type CommentService struct {
	repos   *repository.Repositories
	perPage int
}

func NewCommentService(repos *repository.Repositories, perPage int) *CommentService {
	return &CommentService{repos: repos, perPage: perPage}
}

// ListByPost returns one page of a post's comments.
func (s *CommentService) ListByPost(postID uint, page int, order string) ([]models.Comment, int, error) {
	post, err := s.repos.Posts.ByID(postID)
	if err != nil {
		return nil, 0, response.ErrDatabase
	}
	if post == nil {
		return nil, 0, response.ErrNotFound
	}

	comments, totalPages, err := s.repos.Comments.ListByPost(repository.CommentQuery{
		PostID:  postID,
		Page:    page,
		PerPage: s.perPage,
		Order:   order,
	})
	if err != nil {
		logger.Log.Error("Failed to list comments",
			zap.Uint("post_id", postID),
			zap.Error(err),
		)
		return nil, 0, response.ErrDatabase
	}

	return comments, totalPages, nil
}

// Add inserts a top-level comment and bumps the post's comment counter in
// one transaction.
func (s *CommentService) Add(author *models.User, postID uint, content string) error {
	post, err := s.repos.Posts.ByID(postID)
	if err != nil {
		return response.ErrDatabase
	}
	if post == nil {
		return response.ErrNotFound
	}

	err = s.repos.Atomic(func(tx *repository.Repositories) error {
		comment := &models.Comment{
			Content:  content,
			AuthorID: author.ID,
			PostID:   postID,
		}
		if err := tx.Comments.Create(comment); err != nil {
			return err
		}
		return tx.Posts.AdjustCommentNum(postID, 1)
	})
	if err != nil {
		logger.Log.Error("Failed to add comment",
			zap.Uint("post_id", postID),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	return nil
}

// Reply inserts a new comment row with its parent set to the target and its
// post inherited from the target, and bumps that post's comment counter in
// the same transaction.
func (s *CommentService) Reply(author *models.User, target *models.Comment, content string) error {
	err := s.repos.Atomic(func(tx *repository.Repositories) error {
		parentID := target.ID
		reply := &models.Comment{
			Content:  content,
			AuthorID: author.ID,
			PostID:   target.PostID,
			ParentID: &parentID,
		}
		if err := tx.Comments.Create(reply); err != nil {
			return err
		}
		return tx.Posts.AdjustCommentNum(target.PostID, 1)
	})
	if err != nil {
		logger.Log.Error("Failed to reply to comment",
			zap.Uint("comment_id", target.ID),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	return nil
}

// Modify applies the supplied partial updates. Supplying neither content nor
// parent is a logic failure.
func (s *CommentService) Modify(id uint, content string, hasContent bool, parent *models.Comment) error {
	comment, err := s.repos.Comments.ByID(id)
	if err != nil {
		return response.ErrDatabase
	}
	if comment == nil {
		return response.ErrNotFound
	}

	if !hasContent && parent == nil {
		return response.Fail("Invalid params")
	}

	if hasContent {
		comment.Content = content
	}
	if parent != nil {
		parentID := parent.ID
		comment.ParentID = &parentID
	}

	if err := s.repos.Comments.Save(comment); err != nil {
		logger.Log.Error("Failed to modify comment",
			zap.Uint("comment_id", id),
			zap.Error(err),
		)
		return response.ErrDatabase
	}
	return nil
}

// Delete soft-deletes a comment and restores the post's comment counter in
// the same transaction.
func (s *CommentService) Delete(id uint) error {
	comment, err := s.repos.Comments.ByID(id)
	if err != nil {
		return response.ErrDatabase
	}
	if comment == nil {
		return response.ErrNotFound
	}

	err = s.repos.Atomic(func(tx *repository.Repositories) error {
		if err := tx.Comments.SoftDelete(id); err != nil {
			return err
		}
		return tx.Posts.AdjustCommentNum(comment.PostID, -1)
	})
	if err != nil {
		logger.Log.Error("Failed to delete comment",
			zap.Uint("comment_id", id),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	return nil
}
