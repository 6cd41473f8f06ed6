package services

import "context"

// AlbumSearcher finds cover art for an album.
type AlbumSearcher interface {
	// SearchAlbum returns the first acceptable catalog match, or nil when none is found.
	SearchAlbum(ctx context.Context, title, artist string) (*AlbumMatch, error)
}

// PosterSearcher finds poster art for a film or series.
type PosterSearcher interface {
	// SearchPoster returns an absolute poster URL, or "" when none is found. A zero year is ignored.
	SearchPoster(ctx context.Context, title string, year int) (string, error)
}

// AlbumMatch is the normalized result of an album search.
type AlbumMatch struct {
	ID       string
	Title    string
	Artist   string
	ImageURL string
}
