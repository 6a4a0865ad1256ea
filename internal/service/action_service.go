package service

import (
	"context"

	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/captcha"
	"github.com/mangahub/mangahub/internal/mail"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/utils"
	"github.com/mangahub/mangahub/pkg/logger"
	"go.uber.org/zap"
)

const homepageSlideCount = 5

// ActionService covers the side-effect endpoints: homepage slides, captcha
// issuance and the verification-code mails.
type ActionService struct {
	repos    *repository.Repositories
	store    *cache.Store
	renderer captcha.Renderer
	mailer   mail.Sender
}

func NewActionService(repos *repository.Repositories, store *cache.Store, renderer captcha.Renderer, mailer mail.Sender) *ActionService {
	return &ActionService{repos: repos, store: store, renderer: renderer, mailer: mailer}
}

// Slides returns the homepage carousel items.
func (s *ActionService) Slides() ([]models.Slide, error) {
	slides, err := s.repos.Slides.Top(homepageSlideCount)
	if err != nil {
		logger.Log.Error("Failed to fetch slides", zap.Error(err))
		return nil, response.ErrDatabase
	}
	return slides, nil
}

// IssueCaptcha generates a fresh code under the caller's flag, stores it
// with the code TTL and returns the rendered artifact.
func (s *ActionService) IssueCaptcha(ctx context.Context, flag string) (string, error) {
	code := utils.RandomCode()

	if err := s.store.SaveCaptcha(ctx, flag, code); err != nil {
		logger.Log.Error("Failed to store captcha",
			zap.String("flag", flag),
			zap.Error(err),
		)
		return "", response.ErrDatabase
	}

	artifact, err := s.renderer.Render(code)
	if err != nil {
		logger.Log.Error("Failed to render captcha", zap.Error(err))
		return "", response.ServerError("Server error")
	}

	return artifact, nil
}

// SendRegisterEmail stores a fresh registration code and dispatches the mail
// in the background. The request does not wait for delivery.
func (s *ActionService) SendRegisterEmail(ctx context.Context, email, username string) error {
	return s.sendCode(ctx, cache.EmailRegister, mail.KindRegister, email, username)
}

// SendForgetEmail stores a fresh reset code and dispatches the mail in the
// background.
func (s *ActionService) SendForgetEmail(ctx context.Context, email, username string) error {
	return s.sendCode(ctx, cache.EmailForget, mail.KindForget, email, username)
}

func (s *ActionService) sendCode(ctx context.Context, purpose cache.EmailPurpose, kind mail.Kind, email, username string) error {
	code := utils.RandomCode()

	if err := s.store.SaveEmailCode(ctx, purpose, email, code); err != nil {
		logger.Log.Error("Failed to store email code",
			zap.String("email", email),
			zap.Error(err),
		)
		return response.ErrDatabase
	}

	s.mailer.SendCode(kind, email, username, code, s.store.CodeTTL())

	logger.Log.Info("Code email dispatched",
		zap.String("email", email),
	)
	return nil
}
