package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"songvault/internal/session"
)

// SessionRegistry is the session side of login/logout. Implemented by
// *session.Registry; narrowed here so handler tests can stub it.
type SessionRegistry interface {
	Create(ctx context.Context, identityID string) (string, error)
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Server struct {
	repo       Repository
	sessions   SessionRegistry
	cookieOpts session.CookieOptions
	sessionTTL time.Duration
}

func NewServer(repo Repository, sessions SessionRegistry, cookieOpts session.CookieOptions, sessionTTL time.Duration) *Server {
	return &Server{
		repo:       repo,
		sessions:   sessions,
		cookieOpts: cookieOpts,
		sessionTTL: sessionTTL,
	}
}

// Router mounts the auth endpoints. loginMiddlewares apply to the login
// route only (e.g. a per-IP throttle).
func (s *Server) Router(loginMiddlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", s.handleRegister)
	r.With(loginMiddlewares...).Post("/login", s.handleLogin)
	r.Get("/status", s.handleStatus)
	r.Get("/logout", s.handleLogout)

	return r
}
