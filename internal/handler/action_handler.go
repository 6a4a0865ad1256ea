package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/forms"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/service"
)

type ActionHandler struct {
	actionService *service.ActionService
	repos         *repository.Repositories
	store         *cache.Store
}

func NewActionHandler(actionService *service.ActionService, repos *repository.Repositories, store *cache.Store) *ActionHandler {
	return &ActionHandler{
		actionService: actionService,
		repos:         repos,
		store:         store,
	}
}

// Slides returns the homepage carousel.
// GET /api/v1/action/get_homepage_slide
func (h *ActionHandler) Slides(c *gin.Context) {
	slides, err := h.actionService.Slides()
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"slides": slidePayloads(slides),
	})
}

// IssueCaptcha issues a fresh captcha image for the given flag.
// GET /api/v1/action/captcha/:flag
func (h *ActionHandler) IssueCaptcha(c *gin.Context) {
	flag := c.Param("flag")
	if flag == "" {
		response.Abort(c, response.ErrNotFound)
		return
	}

	image, err := h.actionService.IssueCaptcha(c.Request.Context(), flag)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"flag":    flag,
		"captcha": image,
	})
}

// ValidateCaptcha checks a captcha submission on its own.
// POST /api/v1/action/captcha/
func (h *ActionHandler) ValidateCaptcha(c *gin.Context) {
	form := forms.ValidateCaptcha(c.Request.Context(), h.store)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// SendRegisterEmail mails a registration code.
// GET /api/v1/action/send_register_email
func (h *ActionHandler) SendRegisterEmail(c *gin.Context) {
	form := forms.SendRegisterEmail(c.Request.Context(), h.repos, h.store)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	err := h.actionService.SendRegisterEmail(c.Request.Context(),
		form.Str("email"), form.Str("username"))
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Send email successfully")
}

// SendForgetPasswordEmail mails a reset code to a registered address.
// GET /api/v1/action/send_forget_password_email
func (h *ActionHandler) SendForgetPasswordEmail(c *gin.Context) {
	form := forms.SendForgetPasswordEmail(c.Request.Context(), h.repos, h.store)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	user := form.Entity("email").(*models.User)
	err := h.actionService.SendForgetEmail(c.Request.Context(), user.Email, user.Username)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Send email successfully")
}
