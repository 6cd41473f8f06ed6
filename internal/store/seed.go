package store

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
)

//go:embed seed.toml
var seedFile []byte

// Seed is the static album and entertainment catalog.
type Seed struct {
	Favorites     []string        `toml:"favorites"`
	Albums        []SeedAlbum     `toml:"albums"`
	Entertainment []SeedMediaItem `toml:"entertainment"`
}

// SeedAlbum is one album entry. The first genre is the primary genre.
type SeedAlbum struct {
	Title  string   `toml:"title"`
	Artist string   `toml:"artist"`
	Genres []string `toml:"genres"`
}

// SeedMediaItem is one entertainment entry.
type SeedMediaItem struct {
	Title     string `toml:"title"`
	Category  string `toml:"category"`
	MediaURL  string `toml:"media_url"`
	MediaType string `toml:"media_type"`
}

// LoadSeed parses the embedded catalog.
func LoadSeed() (*Seed, error) {
	return ParseSeed(seedFile)
}

// ParseSeed parses a catalog in the seed.toml format.
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := toml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return &seed, nil
}

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

func flexible(s string) string {
	s = punctuation.ReplaceAllString(strings.ToLower(s), "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// IsFavorite reports whether title matches any of favorites once both are lower-cased and stripped of
// punctuation. Either side may contain the other.
func IsFavorite(title string, favorites []string) bool {
	t := flexible(title)
	for _, fav := range favorites {
		f := flexible(fav)
		if f == "" || t == "" {
			continue
		}
		if f == t || strings.Contains(t, f) || strings.Contains(f, t) {
			return true
		}
	}
	return false
}

// Apply inserts every seed album and entertainment item into s.
func (seed *Seed) Apply(s *Store) {
	for _, sa := range seed.Albums {
		album := models.Album{
			Title:      sa.Title,
			Artist:     sa.Artist,
			Genres:     sa.Genres,
			IsFavorite: IsFavorite(sa.Title, seed.Favorites),
		}
		if len(sa.Genres) > 0 {
			album.Genre = sa.Genres[0]
		}
		s.CreateAlbum(album)
	}

	for _, item := range seed.Entertainment {
		s.CreateEntertainmentItem(models.EntertainmentItem{
			Title:     item.Title,
			Category:  item.Category,
			MediaURL:  item.MediaURL,
			MediaType: models.MediaType(item.MediaType),
		})
	}
}
