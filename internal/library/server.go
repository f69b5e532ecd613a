package library

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	store Store
}

func NewServer(store Store) *Server {
	return &Server{store: store}
}

// Router mounts the library endpoints. The caller supplies the session
// middleware; every route here requires a resolved identity.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Post("/like", s.HandleToggleLike)
	r.Get("/library", s.HandleListLibrary)

	return r
}
