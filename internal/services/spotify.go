// Spotify Web API search client
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/search
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// spotifySearchLimit is the number of candidates inspected per query.
	spotifySearchLimit = 5
	tokenExpiryDelta   = time.Minute
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a simplified Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album search item.
type SpotifyAlbum struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Artists     []SpotifyArtist `json:"artists"`
	Images      []SpotifyImage  `json:"images"`
	Genres      []string        `json:"genres"`
	ReleaseDate string          `json:"release_date"`
}

// SpotifyAlbumSearch is the body of an album search.
type SpotifyAlbumSearch struct {
	Albums struct {
		Items []SpotifyAlbum `json:"items"`
		Total int            `json:"total"`
	} `json:"albums"`
}

// SpotifyOption configures a [SpotifyService].
type SpotifyOption func(*SpotifyService)

// WithSpotifyBaseURL overrides the Web API base URL.
func WithSpotifyBaseURL(u string) SpotifyOption {
	return func(s *SpotifyService) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithSpotifyTokenURL overrides the accounts token endpoint.
func WithSpotifyTokenURL(u string) SpotifyOption {
	return func(s *SpotifyService) { s.tokenURL = u }
}

// WithSpotifyHTTPClient overrides the HTTP client used for searches and token requests.
func WithSpotifyHTTPClient(c *http.Client) SpotifyOption {
	return func(s *SpotifyService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// SpotifyService searches the Spotify catalog with an app-only token.
type SpotifyService struct {
	baseURL    string
	tokenURL   string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// NewSpotifyService creates a client for the given app credentials.
func NewSpotifyService(cfg shared.SpotifyConfig, opts ...SpotifyOption) (*SpotifyService, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, fmt.Errorf("%w: spotify client_id and client_secret", shared.ErrMissingCredentials)
	}

	s := &SpotifyService{
		baseURL:    spotifyBaseURL,
		tokenURL:   spotifyTokenURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     s.tokenURL,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient)
	s.tokens = oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(ctx), tokenExpiryDelta)

	return s, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated GET against the Web API and decodes the JSON body into result.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	token, err := s.tokens.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	apiURL := s.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Search runs a single album query.
func (s *SpotifyService) Search(ctx context.Context, query string) (*SpotifyAlbumSearch, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	params.Set("limit", fmt.Sprint(spotifySearchLimit))

	var result SpotifyAlbumSearch
	if err := s.doRequest(ctx, "/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchAlbum tries each of [SearchStrategies] in turn and returns the first candidate accepted by [MatchAlbum].
//
// A failed query moves on to the next strategy. The last failure is returned only when no strategy
// produced a match; a token failure stops the search immediately.
func (s *SpotifyService) SearchAlbum(ctx context.Context, title, artist string) (*AlbumMatch, error) {
	var lastErr error

	for _, query := range SearchStrategies(title, artist) {
		result, err := s.Search(ctx, query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			if errors.Is(err, shared.ErrAuthFailed) {
				return nil, err
			}
			continue
		}

		for _, candidate := range result.Albums.Items {
			if MatchAlbum(title, artist, candidate) {
				return toAlbumMatch(candidate, artist), nil
			}
		}
	}

	return nil, lastErr
}

func toAlbumMatch(a SpotifyAlbum, fallbackArtist string) *AlbumMatch {
	m := &AlbumMatch{ID: a.ID, Title: a.Name, Artist: fallbackArtist}
	if len(a.Artists) > 0 && a.Artists[0].Name != "" {
		m.Artist = a.Artists[0].Name
	}
	if len(a.Images) > 0 {
		m.ImageURL = a.Images[0].URL
	}
	return m
}
