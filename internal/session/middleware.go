package session

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
)

type ctxIdentityKey struct{}

// WithIdentity records the authenticated identity id on the context.
func WithIdentity(ctx context.Context, identityID string) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, identityID)
}

// IdentityID returns the authenticated identity id from the context, or ""
// when the request carries no resolved session.
func IdentityID(ctx context.Context) string {
	id, _ := ctx.Value(ctxIdentityKey{}).(string)
	return id
}

// RequireAuth resolves the session cookie against the registry and injects
// the identity id into the request context. Requests without a valid
// session are rejected with 401.
func RequireAuth(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			identityID, err := reg.Resolve(r.Context(), token)
			if err != nil {
				log.Printf("session: resolve: %v", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if identityID == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identityID)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
	})
}
