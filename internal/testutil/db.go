// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"go-price-scanner/internal/model"
	"go-price-scanner/pkg/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given email and password.
func CreateUser(t testing.TB, db *gorm.DB, email, password string, isAdmin bool) *model.User {
	t.Helper()

	u := &model.User{
		Name:          email,
		Email:         email,
		PaymentStatus: model.PaymentPending,
		IsAdmin:       isAdmin,
	}
	if err := u.SetPassword(password); err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}
