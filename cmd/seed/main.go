package main

import (
	"log"
	"os"

	"github.com/mangahub/mangahub/internal/config"
	"github.com/mangahub/mangahub/internal/database"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/utils"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)
	database.Migrate()

	repos := repository.New(database.DB)

	if err := database.SeedRoles(repos); err != nil {
		log.Fatal("Failed to seed roles:", err)
	}
	log.Println("✅ Roles seeded")

	seedAdmin(repos)
	seedCategories(repos)
	seedSlides(repos)
}

func seedAdmin(repos *repository.Repositories) {
	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Fatal("Missing enviroment variables: ADMIN_USERNAME, ADMIN_EMAIL, ADMIN_PASSWORD")
	}

	// Check if admin with this email already exists
	admin, err := repos.Users.ByEmail(adminEmail)
	if err != nil {
		log.Fatal("Failed to look up admin:", err)
	}
	if admin != nil {
		log.Println("✅ Admin user already exists:", admin.Username)
		log.Println("   Email:", admin.Email)
		return
	}

	role, err := repos.Roles.ByName("ADMINISTRATOR")
	if err != nil || role == nil {
		log.Fatal("Administrator role missing; run migrations first")
	}

	passwordHash, err := utils.HashPassword(adminPassword)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin = &models.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: passwordHash,
		RoleID:       role.ID,
	}

	if err := repos.Users.Create(admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	log.Println("✅ Admin user created successfully!")
	log.Println("   Username:", admin.Username)
	log.Println("   Email:", admin.Email)
}

func seedCategories(repos *repository.Repositories) {
	names := []string{"Action", "Romance", "Comedy", "Fantasy", "Slice of Life"}

	for i, name := range names {
		existing, err := repos.Categories.ByName(name)
		if err != nil {
			log.Fatal("Failed to look up category:", err)
		}
		if existing != nil {
			continue
		}
		category := &models.Category{Name: name, Index: i + 1}
		if err := repos.Categories.Create(category); err != nil {
			log.Fatal("Failed to create category:", err)
		}
	}

	log.Println("✅ Categories seeded")
}

func seedSlides(repos *repository.Repositories) {
	existing, err := repos.Slides.Top(1)
	if err != nil {
		log.Fatal("Failed to look up slides:", err)
	}
	if len(existing) > 0 {
		log.Println("✅ Slides already exist")
		return
	}

	slides := []models.Slide{
		{Title: "Welcome", URL: "/", Image: "https://placehold.co/1200x400", Order: 1},
		{Title: "New arrivals", URL: "/posts", Image: "https://placehold.co/1200x400", Order: 2},
	}
	for i := range slides {
		if err := repos.Slides.Create(&slides[i]); err != nil {
			log.Fatal("Failed to create slide:", err)
		}
	}

	log.Println("✅ Slides seeded")
}
