package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Identity struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

var (
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrDuplicateUsername = errors.New("username already taken")
)

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS identities(
          id uuid PRIMARY KEY,
          username TEXT UNIQUE NOT NULL,
          password_hash TEXT NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )
  `)
	if err != nil {
		log.Printf("migrate auth: %v", err)
		return err
	}
	return nil
}
