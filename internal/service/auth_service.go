package service

import (
	"time"

	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/utils"
	"github.com/mangahub/mangahub/pkg/logger"
	"go.uber.org/zap"
)

type AuthService struct {
	secret string
	ttl    time.Duration
}

func NewAuthService(secret string, ttl time.Duration) *AuthService {
	return &AuthService{secret: secret, ttl: ttl}
}

// Login verifies the password of an already-resolved user and issues a
// session token. A wrong password yields the same message the login form
// uses for an unknown account, so the response never reveals which was wrong.
func (s *AuthService) Login(user *models.User, password string) (string, error) {
	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.Uint("user_id", user.ID),
		)
		return "", response.Fail("Username or password is wrong")
	}

	token, err := utils.GenerateToken(user.ID, s.secret, s.ttl)
	if err != nil {
		logger.Log.Error("Failed to generate session token",
			zap.Uint("user_id", user.ID),
			zap.Error(err),
		)
		return "", err
	}

	logger.Log.Info("User logged in",
		zap.Uint("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return token, nil
}

// Secret exposes the signing secret for the token-check form.
func (s *AuthService) Secret() string {
	return s.secret
}
