package service

import (
	"context"
	"errors"

	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/pkg/logger"
	"go.uber.org/zap"
)

type PostService struct {
	repos   *repository.Repositories
	store   *cache.Store
	perPage int
}

func NewPostService(repos *repository.Repositories, store *cache.Store, perPage int) *PostService {
	return &PostService{repos: repos, store: store, perPage: perPage}
}

// Create inserts the post and bumps the uploader's post counter in one
// transaction: either both land or neither does.
func (s *PostService) Create(uploader *models.User, title, author, coverImage, content string, category *models.Category) error {
	err := s.repos.Atomic(func(tx *repository.Repositories) error {
		post := &models.Post{
			Title:      title,
			Author:     author,
			CoverImage: coverImage,
			Content:    content,
			CategoryID: category.ID,
			UploaderID: uploader.ID,
		}
		if err := tx.Posts.Create(post); err != nil {
			return err
		}
		return tx.Users.AdjustPostNum(uploader.ID, 1)
	})
	if err != nil {
		logger.Log.Error("Failed to create post",
			zap.Uint("uploader_id", uploader.ID),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	logger.Log.Info("Post created",
		zap.Uint("uploader_id", uploader.ID),
		zap.String("title", title),
	)
	return nil
}

// List returns one page of posts with the viewer's liked flag derived from
// the liked-set.
func (s *PostService) List(ctx context.Context, viewer *models.User, page, categoryID, uploaderID int, order string) ([]models.Post, int, error) {
	posts, totalPages, err := s.repos.Posts.List(repository.PostQuery{
		Page:       page,
		PerPage:    s.perPage,
		CategoryID: uint(categoryID),
		UploaderID: uint(uploaderID),
		Order:      order,
	})
	if err != nil {
		logger.Log.Error("Failed to list posts", zap.Error(err))
		return nil, 0, response.ErrDatabase
	}

	for i := range posts {
		liked, err := s.store.HasLikedPost(ctx, viewer.ID, posts[i].ID)
		if err != nil {
			return nil, 0, storeErr(err)
		}
		posts[i].Liked = liked
	}

	return posts, totalPages, nil
}

// Get fetches a post and bumps its view counter.
func (s *PostService) Get(ctx context.Context, viewer *models.User, id uint) (*models.Post, error) {
	post, err := s.repos.Posts.ByID(id)
	if err != nil {
		return nil, response.ErrDatabase
	}
	if post == nil {
		return nil, response.ErrNotFound
	}

	if err := s.repos.Posts.IncrementViewNum(id); err != nil {
		return nil, response.ErrDatabase
	}
	post.ViewNum++

	liked, err := s.store.HasLikedPost(ctx, viewer.ID, post.ID)
	if err != nil {
		return nil, storeErr(err)
	}
	post.Liked = liked

	return post, nil
}

// CategoryTrail returns the named category followed by its ancestors walking
// root-ward, for breadcrumb rendering on the post detail. A missing category
// yields an empty trail, not an error: the post still renders.
func (s *PostService) CategoryTrail(categoryID uint) ([]models.Category, error) {
	category, err := s.repos.Categories.ByID(categoryID)
	if err != nil {
		logger.Log.Error("Failed to fetch category",
			zap.Uint("category_id", categoryID),
			zap.Error(err),
		)
		return nil, response.ErrDatabase
	}
	if category == nil {
		return nil, nil
	}

	ancestors, err := s.repos.Categories.Ancestors(categoryID)
	if err != nil {
		return nil, response.ErrDatabase
	}

	return append([]models.Category{*category}, ancestors...), nil
}

// Modify applies the supplied partial updates. Supplying none of the fields
// is a logic failure.
func (s *PostService) Modify(id uint, title, content string, hasTitle, hasContent bool, category *models.Category) error {
	post, err := s.repos.Posts.ByID(id)
	if err != nil {
		return response.ErrDatabase
	}
	if post == nil {
		return response.ErrNotFound
	}

	if !hasTitle && !hasContent && category == nil {
		return response.Fail("Invalid params")
	}

	if hasTitle {
		post.Title = title
	}
	if hasContent {
		post.Content = content
	}
	if category != nil {
		post.CategoryID = category.ID
	}

	if err := s.repos.Posts.Save(post); err != nil {
		logger.Log.Error("Failed to modify post",
			zap.Uint("post_id", id),
			zap.Error(err),
		)
		return response.ErrDatabase
	}
	return nil
}

// Delete soft-deletes the caller's own post and restores the uploader's post
// counter in the same transaction.
func (s *PostService) Delete(user *models.User, id uint) error {
	post, err := s.repos.Posts.ByID(id)
	if err != nil {
		return response.ErrDatabase
	}
	if post == nil {
		return response.ErrNotFound
	}
	if post.UploaderID != user.ID {
		return response.Fail("You are not the author of this post")
	}

	err = s.repos.Atomic(func(tx *repository.Repositories) error {
		if err := tx.Posts.SoftDelete(id); err != nil {
			return err
		}
		return tx.Users.AdjustPostNum(post.UploaderID, -1)
	})
	if err != nil {
		logger.Log.Error("Failed to delete post",
			zap.Uint("post_id", id),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	logger.Log.Info("Post deleted",
		zap.Uint("post_id", id),
		zap.Uint("user_id", user.ID),
	)
	return nil
}

// ToggleLike runs the like state machine for one (user, post) pair. Liked-set
// membership decides the transition; the counter is only a tally. Counter and
// set move inside one transactional scope, so a set failure rolls the counter
// back.
func (s *PostService) ToggleLike(ctx context.Context, user *models.User, postID uint) (string, error) {
	post, err := s.repos.Posts.ByID(postID)
	if err != nil {
		return "", response.ErrDatabase
	}
	if post == nil {
		return "", response.ErrNotFound
	}
	if post.UploaderID == user.ID {
		return "", response.Fail("You can not like your own post")
	}

	liked, err := s.store.HasLikedPost(ctx, user.ID, postID)
	if err != nil {
		return "", storeErr(err)
	}

	action := "like"
	if liked {
		action = "unlike"
	}

	err = s.repos.Atomic(func(tx *repository.Repositories) error {
		if liked {
			if err := tx.Posts.AdjustLikeNum(postID, -1); err != nil {
				return err
			}
			return s.store.RemoveLikedPost(ctx, user.ID, postID)
		}
		if err := tx.Posts.AdjustLikeNum(postID, 1); err != nil {
			return err
		}
		return s.store.AddLikedPost(ctx, user.ID, postID)
	})
	if err != nil {
		logger.Log.Error("Failed to toggle like",
			zap.Uint("post_id", postID),
			zap.Uint("user_id", user.ID),
			zap.String("action", action),
			zap.Error(err),
		)
		return "", storeErr(err)
	}

	return action, nil
}

func storeErr(err error) error {
	if errors.Is(err, cache.ErrUnavailable) {
		return response.ErrDatabase
	}
	if _, ok := err.(*response.Error); ok {
		return err
	}
	return response.ErrDatabase
}
