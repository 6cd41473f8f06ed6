package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbImageBaseURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBResult is a single movie or series search match. Movies set Title, series set Name.
type TMDBResult struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	ReleaseDate  string `json:"release_date"`
	FirstAirDate string `json:"first_air_date"`
	Overview     string `json:"overview"`
}

// DisplayTitle returns Title for movies and Name for series.
func (r TMDBResult) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// TMDBResponse models the paginated search response.
type TMDBResponse struct {
	Page         int          `json:"page"`
	Results      []TMDBResult `json:"results"`
	TotalResults int          `json:"total_results"`
}

type seriesKey struct {
	title string
	year  int
}

// series lists titles that are shows rather than films, keyed by lower-cased title and year.
var series = map[seriesKey]struct{}{
	{"loki", 2021}: {},
}

// IsSeries reports whether title and year name a known series.
func IsSeries(title string, year int) bool {
	_, ok := series[seriesKey{strings.ToLower(strings.TrimSpace(title)), year}]
	return ok
}

// TMDBOption configures a [TMDBService].
type TMDBOption func(*TMDBService)

// WithTMDBHTTPClient overrides the default HTTP client.
func WithTMDBHTTPClient(c *http.Client) TMDBOption {
	return func(s *TMDBService) {
		if c != nil {
			s.httpClient = c
		}
	}
}

// WithTMDBLogger sets the logger used for match diagnostics.
func WithTMDBLogger(l *log.Logger) TMDBOption {
	return func(s *TMDBService) {
		if l != nil {
			s.logger = l
		}
	}
}

// TMDBService searches the film metadata API with an API key.
type TMDBService struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	logger       *log.Logger
}

// NewTMDBService creates a client from config. Empty URLs fall back to the public endpoints.
func NewTMDBService(cfg shared.TMDBConfig, opts ...TMDBOption) (*TMDBService, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%w: tmdb api_key", shared.ErrMissingCredentials)
	}

	s := &TMDBService{
		apiKey:       apiKey,
		baseURL:      tmdbBaseURL,
		imageBaseURL: tmdbImageBaseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       log.New(io.Discard),
	}
	if u := strings.TrimSpace(cfg.BaseURL); u != "" {
		s.baseURL = strings.TrimRight(u, "/")
	}
	if u := strings.TrimSpace(cfg.ImageBaseURL); u != "" {
		s.imageBaseURL = strings.TrimRight(u, "/")
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TMDBService) Name() string {
	return "TMDB"
}

func (s *TMDBService) search(ctx context.Context, kind, query string, params url.Values) (*TMDBResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", shared.ErrInvalidInput)
	}

	endpoint, err := url.Parse(s.baseURL + "/search/" + kind)
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params.Set("query", query)
	params.Set("api_key", s.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tmdb %s search returned %d", shared.ErrAPIRequest, kind, resp.StatusCode)
	}

	var payload TMDBResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tmdb response: %w", err)
	}
	return &payload, nil
}

// SearchMovie searches films. A positive year restricts results to that release year.
func (s *TMDBService) SearchMovie(ctx context.Context, query string, year int) (*TMDBResponse, error) {
	params := url.Values{}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	return s.search(ctx, "movie", query, params)
}

// SearchTV searches series. A positive year restricts results to that first air year.
func (s *TMDBService) SearchTV(ctx context.Context, query string, year int) (*TMDBResponse, error) {
	params := url.Values{}
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	return s.search(ctx, "tv", query, params)
}

// SearchPoster returns the poster of the first result for title.
//
// Known series are searched as TV. Everything else is searched as a film first and falls back to
// TV when the film search is empty; a failed fallback keeps the empty film result.
func (s *TMDBService) SearchPoster(ctx context.Context, title string, year int) (string, error) {
	var (
		resp *TMDBResponse
		err  error
	)

	if IsSeries(title, year) {
		resp, err = s.SearchTV(ctx, title, year)
		if err != nil {
			return "", err
		}
	} else {
		resp, err = s.SearchMovie(ctx, title, year)
		if err != nil {
			return "", err
		}
		if len(resp.Results) == 0 {
			if tv, err := s.SearchTV(ctx, title, year); err == nil {
				resp = tv
			}
		}
	}

	if len(resp.Results) == 0 {
		return "", nil
	}
	first := resp.Results[0]
	s.logger.Debug("matched title", "query", title, "year", year, "match", first.DisplayTitle(), "id", first.ID)
	if first.PosterPath == "" {
		return "", nil
	}
	return s.imageBaseURL + first.PosterPath, nil
}
