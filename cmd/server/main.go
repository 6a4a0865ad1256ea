package main

import (
	"log"

	"github.com/mangahub/mangahub/internal/cache"
	"github.com/mangahub/mangahub/internal/captcha"
	"github.com/mangahub/mangahub/internal/config"
	"github.com/mangahub/mangahub/internal/database"
	"github.com/mangahub/mangahub/internal/handler"
	"github.com/mangahub/mangahub/internal/mail"
	"github.com/mangahub/mangahub/internal/middleware"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/service"
	"github.com/mangahub/mangahub/pkg/logger"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	logger.Init(!cfg.IsProduction())
	defer logger.Sync()

	database.Connect(cfg)
	database.Migrate()

	repos := repository.New(database.DB)
	if err := database.SeedRoles(repos); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	// Ephemeral store for captchas, email codes and liked sets
	store, err := cache.New(cfg.RedisURL, cfg.CodeTTL)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer store.Close()

	mailer, err := mail.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPSender)
	if err != nil {
		log.Fatalf("Failed to configure mailer: %v", err)
	}

	// Initialize services
	authService := service.NewAuthService(cfg.TokenSecret, cfg.TokenTTL)
	userService := service.NewUserService(repos)
	postService := service.NewPostService(repos, store, cfg.PostsPerPage)
	commentService := service.NewCommentService(repos, cfg.CommentsPerPage)
	actionService := service.NewActionService(repos, store, captcha.NewSVGRenderer(), mailer)

	// Rate limiting on the unauthenticated routes
	rateLimiter := middleware.NewRateLimiter(store.Client(), middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
	})

	router := handler.NewRouter(handler.Deps{
		Repos:       repos,
		TokenSecret: cfg.TokenSecret,
		Production:  cfg.IsProduction(),

		Auth:    handler.NewAuthHandler(authService, repos),
		User:    handler.NewUserHandler(userService, repos, store),
		Post:    handler.NewPostHandler(postService, repos),
		Comment: handler.NewCommentHandler(commentService, repos),
		Action:  handler.NewActionHandler(actionService, repos, store),

		RateLimiter: rateLimiter,
	})

	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
