package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mangahub/mangahub/internal/models"
	"github.com/mangahub/mangahub/internal/repository"
	"github.com/mangahub/mangahub/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TestDatabase holds test database connection (in-memory SQLite)
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds test Redis mock (miniredis)
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

// SetupTestDatabase creates an in-memory SQLite database for integration tests
// and seeds the fixed role set. No Docker required! Fast and isolated.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := "file::memory:?cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Slide{},
	)
	if err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	SeedRoles(t, db)

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown cleans up the test database (closes connection)
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis creates an in-memory Redis mock (miniredis)
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisURL := fmt.Sprintf("redis://%s", server.Addr())

	return &TestRedis{
		Server: server,
		URL:    redisURL,
	}
}

// Teardown cleans up the test Redis mock
func (tr *TestRedis) Teardown(t *testing.T) {
	tr.Server.Close()
}

// SeedRoles inserts the fixed role enumeration, skipping rows that exist.
func SeedRoles(t *testing.T, db *gorm.DB) {
	repos := repository.New(db)
	for _, role := range models.DefaultRoles() {
		if err := repos.Roles.EnsureByName(role.Name, role.Weight); err != nil {
			t.Fatalf("Failed to seed role %s: %v", role.Name, err)
		}
	}
}

// CleanDatabase deletes all records from the content tables (for test
// isolation). Roles survive so fixtures keep working between tests.
func CleanDatabase(t *testing.T, db *gorm.DB) {
	// Delete all records from tables (SQLite doesn't support TRUNCATE)
	tables := []string{"comments", "posts", "categories", "slides", "users"}
	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}

// CreateTestUser inserts a user with a real argon2id hash and the named role.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email, password, roleName string) *models.User {
	repos := repository.New(db)

	role, err := repos.Roles.ByName(roleName)
	if err != nil || role == nil {
		t.Fatalf("Role %s not seeded: %v", roleName, err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
	}
	if err := repos.Users.Create(user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	// Reload so Role comes preloaded like production lookups
	loaded, err := repos.Users.ByID(user.ID)
	if err != nil || loaded == nil {
		t.Fatalf("Failed to reload test user: %v", err)
	}
	return loaded
}

// CreateTestCategory inserts a category fixture.
func CreateTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	repos := repository.New(db)
	category := &models.Category{Name: name, Index: 1}
	if err := repos.Categories.Create(category); err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// CreateTestPost inserts a post fixture owned by the given user.
func CreateTestPost(t *testing.T, db *gorm.DB, uploader *models.User, category *models.Category, title string) *models.Post {
	repos := repository.New(db)
	post := &models.Post{
		Title:      title,
		Author:     "Test Author",
		Content:    "Test content",
		CoverImage: "https://example.com/cover.png",
		CategoryID: category.ID,
		UploaderID: uploader.ID,
	}
	if err := repos.Posts.Create(post); err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}
	return post
}
