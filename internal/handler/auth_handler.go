package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/forms"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	repos       *repository.Repositories
}

func NewAuthHandler(authService *service.AuthService, repos *repository.Repositories) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		repos:       repos,
	}
}

// Login issues a session token.
// POST /api/v1/auth/token
func (h *AuthHandler) Login(c *gin.Context) {
	form := forms.Login(h.repos)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	// The login form resolved the submitted name into the user entity.
	user := form.Entity("username").(*models.User)

	token, err := h.authService.Login(user, form.Str("password"))
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"token": token,
	})
}

// Check reports whether a submitted token is still valid.
// GET /api/v1/auth/token
func (h *AuthHandler) Check(c *gin.Context) {
	form := forms.CheckToken(h.authService.Secret())
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"token": form.Str("token"),
	})
}
