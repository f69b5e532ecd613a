package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// YouTubeClient talks to the YouTube Data API v3. baseURL is the API root
// (".../youtube/v3") so search and trending share one endpoint config.
type YouTubeClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewYouTubeClient(apiKey, baseURL string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type ytThumbnails struct {
	Default struct {
		URL string `json:"url"`
	} `json:"default"`
	Medium struct {
		URL string `json:"url"`
	} `json:"medium"`
	High struct {
		URL string `json:"url"`
	} `json:"high"`
}

func (t ytThumbnails) best() string {
	if t.High.URL != "" {
		return t.High.URL
	}
	if t.Medium.URL != "" {
		return t.Medium.URL
	}
	return t.Default.URL
}

type ytSnippet struct {
	Title        string       `json:"title"`
	ChannelTitle string       `json:"channelTitle"`
	Thumbnails   ytThumbnails `json:"thumbnails"`
}

type ytSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

type ytVideosResponse struct {
	Items []struct {
		ID      string    `json:"id"`
		Snippet ytSnippet `json:"snippet"`
	} `json:"items"`
}

func (c *YouTubeClient) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("type", "video")
	val.Set("maxResults", fmt.Sprint(limit))
	val.Set("q", query)
	val.Set("key", c.apiKey)

	var body ytSearchResponse
	if err := c.getJSON(ctx, c.baseURL+"/search?"+val.Encode(), &body); err != nil {
		return nil, err
	}

	out := make([]Track, 0, len(body.Items))
	for _, it := range body.Items {
		out = append(out, Track{
			ID:           it.ID.VideoID,
			Title:        it.Snippet.Title,
			Artist:       it.Snippet.ChannelTitle,
			ThumbnailURL: it.Snippet.Thumbnails.best(),
		})
	}
	return out, nil
}

// TrendingTracks returns the region's most popular videos via the videos
// endpoint's mostPopular chart.
func (c *YouTubeClient) TrendingTracks(ctx context.Context, region string, limit int) ([]Track, error) {
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	val := url.Values{}
	val.Set("part", "snippet")
	val.Set("chart", "mostPopular")
	val.Set("videoCategoryId", "10") // Music
	val.Set("regionCode", region)
	val.Set("maxResults", fmt.Sprint(limit))
	val.Set("key", c.apiKey)

	var body ytVideosResponse
	if err := c.getJSON(ctx, c.baseURL+"/videos?"+val.Encode(), &body); err != nil {
		return nil, err
	}

	out := make([]Track, 0, len(body.Items))
	for _, it := range body.Items {
		out = append(out, Track{
			ID:           it.ID,
			Title:        it.Snippet.Title,
			Artist:       it.Snippet.ChannelTitle,
			ThumbnailURL: it.Snippet.Thumbnails.best(),
		})
	}
	return out, nil
}

func (c *YouTubeClient) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
