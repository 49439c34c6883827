// Package testutil wires up the in-memory database and fixtures shared by
// handler tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Eyiladeogo/MicroMart/auth"
	"github.com/Eyiladeogo/MicroMart/database"
	"github.com/Eyiladeogo/MicroMart/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// OpenDB returns an isolated in-memory sqlite database migrated with the full
// schema. Each test gets its own database, named after the test so shared-
// cache connections within one test resolve to the same store.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given staff flag and an empty cart,
// mirroring what registration produces. The password is always "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string, isStaff bool) models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsStaff:      isStaff,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	if err := db.Create(&models.Cart{UserID: user.ID}).Error; err != nil {
		t.Fatalf("create cart for %q: %v", username, err)
	}
	return user
}

// CreateProduct inserts a catalog entry. The price is a decimal string such
// as "1200.00".
func CreateProduct(t *testing.T, db *gorm.DB, name, price string, stock int) models.Product {
	t.Helper()

	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product %q: %v", name, err)
	}
	return product
}

// AccessToken issues a bearer access token for the user, setting a test
// signing secret if none is configured.
func AccessToken(t *testing.T, user models.User) string {
	t.Helper()

	SetJWTSecret(t)
	tokens, err := auth.IssueTokenPair(user.ID, user.Username, user.IsStaff)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	return tokens.Access
}

// SetJWTSecret points JWT_SECRET at a fixed test value for the duration of
// the test.
func SetJWTSecret(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-signing-secret")
}
