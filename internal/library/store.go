package library

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Store interface {
	// Toggle likes the track when no like exists and unlikes it otherwise.
	// Returns true when the final state is "liked".
	Toggle(ctx context.Context, identityID string, song LikedSong) (bool, error)
	ListByIdentity(ctx context.Context, identityID string) ([]LikedSong, error)
}

// DB defines the interface for database operations.
// It is implemented by *pgxpool.Pool and can be mocked for testing.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Toggle runs delete-then-insert inside one transaction. Concurrent toggles
// for the same (identity, track) pair serialize on the unique index: a
// racing insert trips 23505 and is reported as liked (the row exists), a
// racing delete removes zero rows and falls through to insert. The final
// state is always a single row or none.
func (s *PostgresStore) Toggle(ctx context.Context, identityID string, song LikedSong) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
        DELETE FROM liked_songs WHERE identity_id = $1 AND track_id = $2
    `, identityID, song.TrackID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return false, tx.Commit(ctx)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO liked_songs (id, identity_id, track_id, title, artist, thumbnail_url)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (identity_id, track_id) DO NOTHING
    `, uuid.NewString(), identityID, song.TrackID, song.Title, song.Artist, song.ThumbnailURL)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return true, tx.Commit(ctx)
		}
		return false, err
	}
	return true, tx.Commit(ctx)
}

// ListByIdentity returns the identity's liked songs in insertion order,
// oldest first. An identity with no likes gets an empty slice, not nil.
func (s *PostgresStore) ListByIdentity(ctx context.Context, identityID string) ([]LikedSong, error) {
	rows, err := s.db.Query(ctx, `
        SELECT track_id, title, artist, thumbnail_url, created_at
        FROM liked_songs
        WHERE identity_id = $1
        ORDER BY created_at, id
    `, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	songs := make([]LikedSong, 0)
	for rows.Next() {
		var song LikedSong
		if err := rows.Scan(
			&song.TrackID,
			&song.Title,
			&song.Artist,
			&song.ThumbnailURL,
			&song.CreatedAt,
		); err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return songs, nil
}
