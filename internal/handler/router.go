package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mangahub/mangahub/internal/middleware"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/response"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Repos       *repository.Repositories
	TokenSecret string
	Production  bool

	Auth    *AuthHandler
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
	Action  *ActionHandler

	// Optional; public routes run unthrottled when nil.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine and the full /api/v1 route table.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.TokenHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.HSTS(deps.Production))

	router.NoRoute(func(c *gin.Context) {
		response.Abort(c, response.ErrNotFound)
	})

	v1 := router.Group("/api/v1")

	public := v1.Group("")
	if deps.RateLimiter != nil {
		public.Use(deps.RateLimiter.Middleware())
	}
	{
		public.POST("/user", deps.User.Register)
		public.POST("/auth/token", deps.Auth.Login)
		public.GET("/auth/token", deps.Auth.Check)
		public.PUT("/user/password/forget", deps.User.ForgetPassword)

		public.GET("/post/:id/comments", deps.Comment.ListByPost)

		public.GET("/action/get_homepage_slide", deps.Action.Slides)
		public.GET("/action/captcha/:flag", deps.Action.IssueCaptcha)
		public.POST("/action/captcha/", deps.Action.ValidateCaptcha)
		public.GET("/action/send_register_email", deps.Action.SendRegisterEmail)
		public.GET("/action/send_forget_password_email", deps.Action.SendForgetPasswordEmail)
	}

	authed := v1.Group("")
	authed.Use(middleware.Auth(deps.Repos.Users, deps.TokenSecret))
	{
		authed.GET("/user", deps.User.GetSelf)
		authed.PATCH("/user", deps.User.Modify)
		authed.GET("/user/:id", deps.User.GetOther)
		authed.PUT("/user/password/reset", deps.User.ResetPassword)
		authed.DELETE("/user/:id",
			middleware.RequireRole(models.WeightAdministrator), deps.User.Delete)

		authed.GET("/posts", deps.Post.List)
		authed.POST("/post",
			middleware.RequireRole(models.WeightAuthor), deps.Post.Create)
		authed.GET("/post/:id", deps.Post.Get)
		authed.PATCH("/post/:id",
			middleware.RequireRole(models.WeightAuthor), deps.Post.Modify)
		authed.DELETE("/post/:id",
			middleware.RequireRole(models.WeightAuthor), deps.Post.Delete)
		authed.GET("/post/:id/like", deps.Post.Like)

		authed.POST("/post/:id/comment", deps.Comment.Create)
		authed.POST("/comment/:id/reply", deps.Comment.Reply)
		authed.PATCH("/comment/:id",
			middleware.RequireRole(models.WeightManager), deps.Comment.Modify)
		authed.DELETE("/comment/:id",
			middleware.RequireRole(models.WeightManager), deps.Comment.Delete)
	}

	return router
}
