package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"prodcatalog/internal/database"
	"prodcatalog/internal/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	err = db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.RefreshToken{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "irrelevant",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}
