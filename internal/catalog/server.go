package catalog

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Provider interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)
	TrendingTracks(ctx context.Context, region string, limit int) ([]Track, error)
}

type Resolver interface {
	Resolve(ctx context.Context, trackID string) (string, error)
}

type Server struct {
	provider Provider
	resolver Resolver
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewServer wires the catalog endpoints. rdb may be nil; caching is then
// skipped entirely.
func NewServer(provider Provider, resolver Resolver, rdb *redis.Client, cacheTTL time.Duration) *Server {
	return &Server{
		provider: provider,
		resolver: resolver,
		rdb:      rdb,
		cacheTTL: cacheTTL,
	}
}
