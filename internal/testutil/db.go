// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"spmtutor/internal/config"
	"spmtutor/internal/model"
	"spmtutor/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database in a temp dir that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}, false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// SeedUser inserts a user and returns it.
func SeedUser(t testing.TB, db *gorm.DB, user model.User) *model.User {
	t.Helper()
	if user.Name == "" {
		user.Name = "Student"
	}
	if user.Email == "" {
		user.Email = model.GenerateUUID() + "@example.com"
	}
	if user.Role == "" {
		user.Role = model.Student
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}
