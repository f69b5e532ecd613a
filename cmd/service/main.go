package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"songvault/internal/auth"
	"songvault/internal/catalog"
	"songvault/internal/library"
	"songvault/internal/session"
)

func main() {
	ctx := context.Background()

	cfg, err := loadConfigFromEnv()
	if err != nil {
		log.Fatalf("songvault: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("songvault: failed to connect to DB: %v", err)
	}
	defer pool.Close()

	if err := auth.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("songvault: migrate auth: %v", err)
	}
	if err := library.AutoMigrate(ctx, pool); err != nil {
		log.Fatalf("songvault: migrate library: %v", err)
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("songvault: invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opt)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("songvault: redis ping: %v", err)
	}

	registry := session.NewRegistry(rdb, cfg.SessionTTL)
	cookieOpts := session.CookieOptions{Secure: cfg.CookieSecure}

	authSrv := auth.NewServer(auth.NewPostgresRepository(pool), registry, cookieOpts, cfg.SessionTTL)
	libSrv := library.NewServer(library.NewPostgresStore(pool))
	yt := catalog.NewYouTubeClient(cfg.YouTubeAPIKey, cfg.YouTubeBaseURL)
	resolver := catalog.NewStreamResolver(cfg.ResolverURL)
	catSrv := catalog.NewServer(yt, resolver, rdb, cfg.SearchCacheTTL)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware(cfg.CORSOrigin))
	r.Use(bodySizeLimitMiddleware(cfg.MaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authSrv.Router(loginRateLimitMiddleware))

		r.Get("/search", catSrv.HandleSearch)
		r.Get("/trending", catSrv.HandleTrending)
		r.Get("/stream/{trackId}", catSrv.HandleStream)

		// /api/like and /api/library, both behind the session gate.
		r.Mount("/", libSrv.Router(session.RequireAuth(registry)))
	})

	log.Printf("songvault listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("songvault: %v", err)
	}
}
