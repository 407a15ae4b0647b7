package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/devcamper/internal/db/dbtest"
	"github.com/templui/devcamper/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func TestImportAndDestroy(t *testing.T) {
	ctx := context.Background()
	database := dbtest.New(t)
	s := New(database)

	require.NoError(t, s.Import(ctx))

	users, err := s.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 5)

	admin, err := s.users.ByEmail(ctx, "admin@devcamper.io")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("123456")))

	bootcamps, err := s.bootcamps.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bootcamps, 2)

	courses, err := s.courses.List(ctx, bootcamps[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, courses)

	reviews, err := s.reviews.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, reviews, 3)

	assert.ErrorIs(t, s.Import(ctx), repository.ErrDuplicate)

	require.NoError(t, s.Destroy(ctx))

	users, err = s.users.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	reviews, err = s.reviews.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
