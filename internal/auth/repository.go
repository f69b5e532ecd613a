package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository interface {
	CreateIdentity(ctx context.Context, username, passwordHash string) (Identity, error)
	FindIdentityByUsername(ctx context.Context, username string) (Identity, error)
	FindIdentityByID(ctx context.Context, id string) (Identity, error)
}

// DBOps defines the subset of pgxpool.Pool methods we use.
// This allows us to inject a mock for testing.
type DBOps interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DBOps
}

func NewPostgresRepository(db DBOps) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateIdentity inserts a new identity. The unique index on username is
// the authority on duplicates: a concurrent insert of the same username
// leaves exactly one winner, the loser gets ErrDuplicateUsername.
func (r *PostgresRepository) CreateIdentity(ctx context.Context, username, passwordHash string) (Identity, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO identities (id, username, password_hash)
        VALUES ($1, $2, $3)
        ON CONFLICT (username) DO NOTHING
        RETURNING id, username, password_hash, created_at`,
		uuid.NewString(), username, passwordHash,
	)
	ident, err := scanIdentity(row)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return Identity{}, ErrDuplicateUsername
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Identity{}, ErrDuplicateUsername
		}
		return Identity{}, err
	}
	return ident, nil
}

func (r *PostgresRepository) FindIdentityByUsername(ctx context.Context, username string) (Identity, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, created_at
      FROM identities WHERE username = $1`, username)
	return scanIdentity(row)
}

func (r *PostgresRepository) FindIdentityByID(ctx context.Context, id string) (Identity, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, created_at
      FROM identities WHERE id = $1`, id)
	return scanIdentity(row)
}

func scanIdentity(row pgx.Row) (Identity, error) {
	var ident Identity
	err := row.Scan(
		&ident.ID,
		&ident.Username,
		&ident.PasswordHash,
		&ident.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrIdentityNotFound
		}
		return Identity{}, err
	}
	return ident, nil
}
