package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"songvault/internal/session"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type IdentityInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type StatusResponse struct {
	LoggedIn bool          `json:"loggedIn"`
	Identity *IdentityInfo `json:"identity,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	// Usernames are case-sensitive and kept exactly as registered.
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(creds.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("register: hash error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	ident, err := s.repo.CreateIdentity(r.Context(), username, string(hash))
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			writeError(w, http.StatusConflict, "username already taken")
			return
		}
		log.Printf("register: create identity: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Printf("auth: registered identity %s", ident.ID)
	writeJSON(w, http.StatusCreated, map[string]any{"success": true})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	username := strings.TrimSpace(creds.Username)
	if username == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	// Unknown username and wrong password answer identically.
	ident, err := s.repo.FindIdentityByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		log.Printf("login: find identity: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(creds.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.sessions.Create(r.Context(), ident.ID)
	if err != nil {
		log.Printf("login: create session: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	session.SetCookie(w, token, s.sessionTTL, s.cookieOpts)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleStatus is a pure lookup: an absent, unknown or expired token means
// loggedIn=false, never a failure.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if token == "" {
		writeJSON(w, http.StatusOK, StatusResponse{LoggedIn: false})
		return
	}

	identityID, err := s.sessions.Resolve(r.Context(), token)
	if err != nil {
		log.Printf("status: resolve session: %v", err)
		writeJSON(w, http.StatusOK, StatusResponse{LoggedIn: false})
		return
	}
	if identityID == "" {
		writeJSON(w, http.StatusOK, StatusResponse{LoggedIn: false})
		return
	}

	ident, err := s.repo.FindIdentityByID(r.Context(), identityID)
	if err != nil {
		if !errors.Is(err, ErrIdentityNotFound) {
			log.Printf("status: find identity: %v", err)
		}
		writeJSON(w, http.StatusOK, StatusResponse{LoggedIn: false})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		LoggedIn: true,
		Identity: &IdentityInfo{ID: ident.ID, Username: ident.Username},
	})
}

// handleLogout is idempotent: unknown tokens and repeated logouts succeed
// silently.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if token != "" {
		if err := s.sessions.Revoke(r.Context(), token); err != nil {
			log.Printf("logout: revoke session: %v", err)
		}
	}
	session.ClearCookie(w, s.cookieOpts)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
