package service

import (
	"errors"

	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/utils"
	"github.com/mangahub/mangahub/pkg/logger"
	"go.uber.org/zap"
)

type UserService struct {
	repos *repository.Repositories
}

func NewUserService(repos *repository.Repositories) *UserService {
	return &UserService{repos: repos}
}

// Register creates a new account with the default USER role. Uniqueness of
// username and email has already been checked by the registration form; the
// database constraints remain the final arbiter inside the transaction.
func (s *UserService) Register(username, email, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return err
	}

	err = s.repos.Atomic(func(tx *repository.Repositories) error {
		role, err := tx.Roles.ByName("USER")
		if err != nil {
			return err
		}
		if role == nil {
			return errors.New("USER role not seeded")
		}
		return tx.Users.Create(&models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			RoleID:       role.ID,
		})
	})
	if err != nil {
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	logger.Log.Info("User registered",
		zap.String("username", username),
		zap.String("email", email),
	)
	return nil
}

// Get returns a user by id, soft-deleted rows excluded.
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.repos.Users.ByID(id)
	if err != nil {
		return nil, response.ErrDatabase
	}
	if user == nil {
		return nil, response.ErrNotFound
	}
	return user, nil
}

// ModifyProfile applies the supplied bio and avatar updates. Supplying
// neither is a logic failure, not a no-op success.
func (s *UserService) ModifyProfile(user *models.User, bio, avatar string, hasBio, hasAvatar bool) error {
	if !hasBio && !hasAvatar {
		return response.Fail("Invalid params")
	}

	if hasBio {
		user.Bio = bio
	}
	if hasAvatar {
		user.Avatar = avatar
	}

	if err := s.repos.Users.Save(user); err != nil {
		logger.Log.Error("Failed to modify profile",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return response.ErrDatabase
	}
	return nil
}

// ResetPassword replaces the user's password hash. Old-password or email-code
// verification happens in the calling form.
func (s *UserService) ResetPassword(user *models.User, newPassword string) error {
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return err
	}

	user.PasswordHash = hash
	if err := s.repos.Users.Save(user); err != nil {
		logger.Log.Error("Failed to reset password",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	logger.Log.Info("Password reset", zap.Uint("user_id", user.ID))
	return nil
}

// Delete soft-deletes the user. Their rows stay in place and every read
// path stops seeing them.
func (s *UserService) Delete(id uint) error {
	user, err := s.repos.Users.ByID(id)
	if err != nil {
		return response.ErrDatabase
	}
	if user == nil {
		return response.ErrNotFound
	}

	if err := s.repos.Users.SoftDelete(id); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.Uint("user_id", id),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	logger.Log.Info("User deleted", zap.Uint("user_id", id))
	return nil
}
