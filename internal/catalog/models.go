package catalog

// Track is the catalog's view of a song: just enough to render a search
// result and toggle a like.
type Track struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Artist       string `json:"artist"`
	ThumbnailURL string `json:"thumbnail"`
}

type SearchResponse struct {
	Items []Track `json:"items"`
}

type StreamResponse struct {
	URL string `json:"url"`
}
