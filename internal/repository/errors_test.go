package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/devcamper/internal/model"
)

func TestIsUniqueViolationPostgres(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("UNIQUE constraint failed")))
	assert.False(t, isUniqueViolation(nil))

	assert.ErrorIs(t, execErr(unique), ErrDuplicate)
	assert.Equal(t, fk, execErr(fk))
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestDriverErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	database, mock := newMockDB(t)
	connErr := errors.New("connection reset by peer")

	mock.ExpectQuery("SELECT \\* FROM bootcamps").WillReturnError(connErr)
	_, err := NewBootcampRepository(database).List(ctx)
	assert.ErrorIs(t, err, connErr)

	mock.ExpectExec("DELETE FROM courses").WithArgs("c1").WillReturnError(connErr)
	err = NewCourseRepository(database).Delete(ctx, "c1")
	assert.ErrorIs(t, err, connErr)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDuplicateMapsToErrDuplicate(t *testing.T) {
	database, mock := newMockDB(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         "Dup",
		Email:        "dup@gmail.com",
		Role:         model.RoleUser,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	err := NewUserRepository(database).Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
