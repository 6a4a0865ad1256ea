package database

import (
	"log"

	"github.com/mangahub/mangahub/internal/config"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})

	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}

	log.Println("Database connect successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Slide{},
	)

	if err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Database migration completed")
}

// SeedRoles inserts the fixed role set if missing. Safe to run on every boot.
func SeedRoles(repos *repository.Repositories) error {
	for _, role := range models.DefaultRoles() {
		if err := repos.Roles.EnsureByName(role.Name, role.Weight); err != nil {
			return err
		}
	}
	return nil
}
