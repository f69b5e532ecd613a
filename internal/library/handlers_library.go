package library

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"songvault/internal/session"
)

func (s *Server) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	identityID := session.IdentityID(r.Context())
	if identityID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var body struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Artist    string `json:"artist"`
		Thumbnail string `json:"thumbnail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	body.ID = strings.TrimSpace(body.ID)
	body.Title = strings.TrimSpace(body.Title)
	body.Artist = strings.TrimSpace(body.Artist)
	body.Thumbnail = strings.TrimSpace(body.Thumbnail)

	if body.ID == "" || body.Title == "" {
		writeError(w, http.StatusBadRequest, "id and title are required")
		return
	}
	if len(body.Title) > 300 {
		writeError(w, http.StatusBadRequest, "title must be between 1 and 300 characters")
		return
	}
	if len(body.Artist) > 200 {
		writeError(w, http.StatusBadRequest, "artist is too long")
		return
	}

	liked, err := s.store.Toggle(r.Context(), identityID, LikedSong{
		TrackID:      body.ID,
		Title:        body.Title,
		Artist:       body.Artist,
		ThumbnailURL: body.Thumbnail,
	})
	if err != nil {
		log.Printf("library: toggle like: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	status := "unliked"
	if liked {
		status = "liked"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleListLibrary serves only the caller's own rows; the identity always
// comes from the session, never from the request.
func (s *Server) HandleListLibrary(w http.ResponseWriter, r *http.Request) {
	identityID := session.IdentityID(r.Context())
	if identityID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	songs, err := s.store.ListByIdentity(r.Context(), identityID)
	if err != nil {
		log.Printf("library: list: %v", err)
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}

	writeJSON(w, http.StatusOK, songs)
}
