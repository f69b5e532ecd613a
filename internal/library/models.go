package library

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// LikedSong is a user's saved reference to an external catalog track. The
// JSON "id" is the external track id, the same one the client posts to
// toggle a like.
type LikedSong struct {
	TrackID      string    `json:"id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ThumbnailURL string    `json:"thumbnail"`
	CreatedAt    time.Time `json:"likedAt"`
}

func AutoMigrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
      CREATE TABLE IF NOT EXISTS liked_songs (
          id            uuid PRIMARY KEY,
          identity_id   uuid NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
          track_id      TEXT NOT NULL,
          title         TEXT NOT NULL,
          artist        TEXT NOT NULL DEFAULT '',
          thumbnail_url TEXT NOT NULL DEFAULT '',
          created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
          UNIQUE (identity_id, track_id)
      )
  `)
	if err != nil {
		log.Printf("migrate library: %v", err)
		return err
	}
	return nil
}
