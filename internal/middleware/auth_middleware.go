package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
	"github.com/mangahub/mangahub/internal/utils"
)

// TokenHeader is the fixed header carrying the session token.
const TokenHeader = "ACCESS-TOKEN"

const ctxUserKey = "current_user"

// Auth is the authentication gate. A missing, malformed or expired token, and
// a token whose user no longer exists (deleted after issuance), all abort
// with the same uniform auth error so nothing leaks about which case it was.
// On success the loaded user, role included, binds to the request context.
func Auth(users *repository.UserRepository, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		if token == "" {
			response.Abort(c, response.ErrAuth)
			return
		}

		userID, err := utils.VerifyToken(token, secret)
		if err != nil {
			response.Abort(c, response.ErrAuth)
			return
		}

		// Soft-delete-aware lookup: a deleted user reads as absent.
		user, err := users.ByID(userID)
		if err != nil {
			response.Abort(c, response.ErrDatabase)
			return
		}
		if user == nil {
			response.Abort(c, response.ErrAuth)
			return
		}

		c.Set(ctxUserKey, user)
		c.Next()
	}
}

// RequireRole is the role gate: minimum weight per endpoint, compared on the
// roles' total order. Identity is already established here, so the failure
// carries a human message instead of the uniform auth error.
func RequireRole(minWeight int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Abort(c, response.ErrAuth)
			return
		}
		if user.Role.Weight < minWeight {
			response.Abort(c, response.Forbidden("You are not allowed to do it"))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user bound by Auth, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ctxUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
