package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/forms"
	"github.com/mangahub/mangahub/internal/middleware"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/service"
)

type UserHandler struct {
	userService *service.UserService
	repos       *repository.Repositories
	store       *cache.Store
}

func NewUserHandler(userService *service.UserService, repos *repository.Repositories, store *cache.Store) *UserHandler {
	return &UserHandler{
		userService: userService,
		repos:       repos,
		store:       store,
	}
}

// Register creates a new account.
// POST /api/v1/user
func (h *UserHandler) Register(c *gin.Context) {
	form := forms.Register(c.Request.Context(), h.repos, h.store)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	err := h.userService.Register(form.Str("username"), form.Str("email"), form.Str("password"))
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Successfully registered")
}

// GetSelf returns the authenticated user's own profile.
// GET /api/v1/user
func (h *UserHandler) GetSelf(c *gin.Context) {
	user := middleware.CurrentUser(c)

	response.Success(c, gin.H{
		"user": userPayload(user),
	})
}

// GetOther returns another user's profile.
// GET /api/v1/user/:id
func (h *UserHandler) GetOther(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, gin.H{
		"user": userPayload(user),
	})
}

// Modify updates the authenticated user's bio and avatar.
// PATCH /api/v1/user
func (h *UserHandler) Modify(c *gin.Context) {
	form := forms.ModifyUser()
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	err := h.userService.ModifyProfile(user,
		form.Str("bio"), form.Str("avatar"),
		form.Present("bio"), form.Present("avatar"),
	)
	if err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Information modified successfully")
}

// Delete soft-deletes a user. Requires ADMINISTRATOR weight.
// DELETE /api/v1/user/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, nil)
}

// ForgetPassword resets a password against an emailed code.
// PUT /api/v1/user/password/forget
func (h *UserHandler) ForgetPassword(c *gin.Context) {
	form := forms.ForgetPassword(c.Request.Context(), h.repos, h.store)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	// The form resolved the email into its account.
	user := form.Entity("email").(*models.User)

	if err := h.userService.ResetPassword(user, form.Str("password")); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Reset password successfully")
}

// ResetPassword changes the authenticated user's password.
// PUT /api/v1/user/password/reset
func (h *UserHandler) ResetPassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	form := forms.ResetPassword(user)
	if err := form.Bind(c, nil); err != nil {
		response.Abort(c, err)
		return
	}

	if err := h.userService.ResetPassword(user, form.Str("new_password")); err != nil {
		response.Abort(c, err)
		return
	}

	response.Success(c, "Reset password successfully")
}
