package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))
	return db
}

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewService(testDB(t))
	ctx := context.Background()

	u, err := s.Register(ctx, "  Joao@Example.COM ", "João", "s3nha-forte")
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", u.Email)
	assert.Equal(t, RoleCustomer, u.Role)
	assert.NotEmpty(t, u.ID)

	got, err := s.Authenticate(ctx, "joao@example.com", "s3nha-forte")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := NewService(testDB(t))
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.c", "A", "x12345678")
	require.NoError(t, err)

	_, err = s.Register(ctx, "A@B.C", "A2", "y12345678")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Conflict))
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	s := NewService(testDB(t))
	ctx := context.Background()

	_, err := s.Register(ctx, "a@b.c", "A", "x12345678")
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, "a@b.c", "errada")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))

	_, err = s.Authenticate(ctx, "ninguem@b.c", "x12345678")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Unauthorized))
}

func TestGetByID(t *testing.T) {
	s := NewService(testDB(t))
	ctx := context.Background()

	u, err := s.Register(ctx, "a@b.c", "A", "x12345678")
	require.NoError(t, err)

	got, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", got.Email)

	_, err = s.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}
