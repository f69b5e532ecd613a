package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
)

func setupMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func identityRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at"})
}

func TestCreateIdentity(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("INSERT INTO identities").
			WithArgs(pgxmock.AnyArg(), "alice", "hash").
			WillReturnRows(identityRows().AddRow("id-1", "alice", "hash", time.Now()))

		ident, err := repo.CreateIdentity(context.Background(), "alice", "hash")

		assert.NoError(t, err)
		assert.Equal(t, "alice", ident.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate maps to ErrDuplicateUsername", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		// ON CONFLICT DO NOTHING returns no rows for the loser.
		mock.ExpectQuery("INSERT INTO identities").
			WithArgs(pgxmock.AnyArg(), "alice", "hash").
			WillReturnRows(identityRows())

		_, err := repo.CreateIdentity(context.Background(), "alice", "hash")

		assert.ErrorIs(t, err, ErrDuplicateUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DB error passes through", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		dbErr := errors.New("connection reset")
		mock.ExpectQuery("INSERT INTO identities").
			WithArgs(pgxmock.AnyArg(), "alice", "hash").
			WillReturnError(dbErr)

		_, err := repo.CreateIdentity(context.Background(), "alice", "hash")

		assert.ErrorIs(t, err, dbErr)
	})
}

func TestFindIdentityByUsername(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("SELECT id, username, password_hash, created_at").
			WithArgs("alice").
			WillReturnRows(identityRows().AddRow("id-1", "alice", "hash", time.Now()))

		ident, err := repo.FindIdentityByUsername(context.Background(), "alice")

		assert.NoError(t, err)
		assert.Equal(t, "id-1", ident.ID)
	})

	t.Run("Not found", func(t *testing.T) {
		repo, mock := setupMockRepo(t)

		mock.ExpectQuery("SELECT id, username, password_hash, created_at").
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.FindIdentityByUsername(context.Background(), "nobody")

		assert.ErrorIs(t, err, ErrIdentityNotFound)
	})
}

func TestFindIdentityByID(t *testing.T) {
	repo, mock := setupMockRepo(t)

	mock.ExpectQuery("SELECT id, username, password_hash, created_at").
		WithArgs("id-1").
		WillReturnRows(identityRows().AddRow("id-1", "alice", "hash", time.Now()))

	ident, err := repo.FindIdentityByID(context.Background(), "id-1")

	assert.NoError(t, err)
	assert.Equal(t, "alice", ident.Username)
}
