package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// StreamResolver asks an external resolver service (a yt-dlp style sidecar)
// for a direct playable audio URL for a track.
type StreamResolver struct {
	baseURL string
	http    *http.Client
}

func NewStreamResolver(baseURL string) *StreamResolver {
	return &StreamResolver{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (r *StreamResolver) Resolve(ctx context.Context, trackID string) (string, error) {
	u, err := url.Parse(r.baseURL)
	if err != nil {
		return "", err
	}
	u.Path = "/resolve/" + url.PathEscape(trackID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("resolver status %d", resp.StatusCode)
	}

	var body StreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.URL == "" {
		return "", fmt.Errorf("resolver returned no url for track %s", trackID)
	}
	return body.URL, nil
}
