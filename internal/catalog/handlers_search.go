package catalog

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("query"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if len(q) > 200 {
		writeError(w, http.StatusBadRequest, "query is too long")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))

	cacheKey := "catalog:search:" + strconv.Itoa(limit) + ":" + strings.ToLower(q)
	if s.writeCached(w, r, cacheKey) {
		return
	}

	items, err := s.provider.SearchTracks(r.Context(), q, limit)
	if err != nil {
		log.Printf("catalog: search %q: %v", q, err)
		writeError(w, http.StatusBadGateway, "failed to query provider")
		return
	}

	s.writeAndCache(w, r, cacheKey, SearchResponse{Items: items})
}

func (s *Server) HandleTrending(w http.ResponseWriter, r *http.Request) {
	region := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("region")))
	if region == "" {
		region = "US"
	}
	if len(region) != 2 {
		writeError(w, http.StatusBadRequest, "region must be a 2-letter code")
		return
	}

	limit := parseLimit(r.URL.Query().Get("limit"))

	cacheKey := "catalog:trending:" + strconv.Itoa(limit) + ":" + region
	if s.writeCached(w, r, cacheKey) {
		return
	}

	items, err := s.provider.TrendingTracks(r.Context(), region, limit)
	if err != nil {
		log.Printf("catalog: trending %s: %v", region, err)
		writeError(w, http.StatusBadGateway, "failed to query provider")
		return
	}

	s.writeAndCache(w, r, cacheKey, SearchResponse{Items: items})
}

func (s *Server) HandleStream(w http.ResponseWriter, r *http.Request) {
	trackID := chi.URLParam(r, "trackId")
	if trackID == "" {
		writeError(w, http.StatusBadRequest, "missing track id")
		return
	}

	streamURL, err := s.resolver.Resolve(r.Context(), trackID)
	if err != nil {
		log.Printf("catalog: resolve %s: %v", trackID, err)
		writeError(w, http.StatusBadGateway, "failed to resolve stream")
		return
	}

	writeJSON(w, http.StatusOK, StreamResponse{URL: streamURL})
}

func parseLimit(raw string) int {
	limit := 10
	if raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 25 {
			limit = v
		}
	}
	return limit
}

// writeCached serves a cached response body if one exists. Cache misses and
// Redis errors both fall through to the provider.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(r.Context(), key).Bytes()
	if err != nil {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return true
}

func (s *Server) writeAndCache(w http.ResponseWriter, r *http.Request, key string, resp SearchResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("catalog: marshal response: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if s.rdb != nil {
		if err := s.rdb.Set(r.Context(), key, data, s.cacheTTL).Err(); err != nil {
			log.Printf("catalog: cache set %s: %v", key, err)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
