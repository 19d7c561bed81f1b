package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/user/domain"
)

func newUser() *domain.User {
	return &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        "ana@example.com",
		Name:         "Ana Souza",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestPostgreSQLUserRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLUserRepository(db)
		user := newUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = repo.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLUserRepository(db)
		user := newUser()

		mock.ExpectExec("INSERT INTO users").
			WithArgs(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		err = repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLUserRepository_GetByEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLUserRepository(db)
		user := newUser()

		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(user.Email).
			WillReturnRows(rows)

		got, err := repo.GetByEmail(context.Background(), user.Email)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLUserRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}))

		got, err := repo.GetByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLUserRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLUserRepository(db)
		user := newUser()

		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(user.ID).
			WillReturnRows(rows)

		got, err := repo.GetByID(context.Background(), user.ID)
		assert.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLUserRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewMySQLUserRepository(db)
		user := newUser()

		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(idBytes, user.Email, user.Name, user.PasswordHash, user.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = repo.Create(context.Background(), user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewMySQLUserRepository(db)
		user := newUser()

		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO users").
			WithArgs(idBytes, user.Email, user.Name, user.PasswordHash, user.CreatedAt).
			WillReturnError(errors.New("Error 1062: Duplicate entry 'ana@example.com' for key 'users.email'"))

		err = repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQLUserRepository_GetByEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewMySQLUserRepository(db)
		user := newUser()

		idBytes, err := user.ID.MarshalBinary()
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at"}).
			AddRow(idBytes, user.Email, user.Name, user.PasswordHash, user.CreatedAt)

		mock.ExpectQuery("SELECT (.+) FROM users").
			WithArgs(user.Email).
			WillReturnRows(rows)

		got, err := repo.GetByEmail(context.Background(), user.Email)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
