package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCorsMiddleware(t *testing.T) {
	handler := corsMiddleware("*")(okHandler())

	t.Run("sets headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q; want *", got)
		}
		if w.Code != http.StatusOK {
			t.Errorf("status = %d; want 200", w.Code)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d; want 204", w.Code)
		}
	})
}

func TestBodySizeLimitMiddleware(t *testing.T) {
	handler := bodySizeLimitMiddleware(10)(okHandler())

	t.Run("rejects oversized declared body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 100)))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d; want 413", w.Code)
		}
	})

	t.Run("allows small body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("tiny"))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d; want 200", w.Code)
		}
	})
}

func TestLoginRateLimitMiddleware(t *testing.T) {
	handler := loginRateLimitMiddleware(okHandler())

	req := httptest.NewRequest("POST", "/login", nil)
	req.RemoteAddr = "203.0.113.7:1234"

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first attempt status = %d; want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second attempt status = %d; want 429", w.Code)
	}

	// A different IP is unaffected.
	other := httptest.NewRequest("POST", "/login", nil)
	other.RemoteAddr = "203.0.113.8:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, other)
	if w.Code != http.StatusOK {
		t.Errorf("other IP status = %d; want 200", w.Code)
	}
}
