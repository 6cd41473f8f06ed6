package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Credentials CredentialsConfig `toml:"credentials"`
	Data        DataConfig        `toml:"data"`
	Enrichment  EnrichmentConfig  `toml:"enrichment"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Database    DatabaseConfig    `toml:"database"`
	Log         LogConfig         `toml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	CoversDir      string   `toml:"covers_dir"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	TMDB    TMDBConfig    `toml:"tmdb"`
}

// SpotifyConfig contains Spotify client-credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// TMDBConfig contains the film metadata API key and endpoints.
type TMDBConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
}

// DataConfig points at the exported ratings and diary CSV files.
type DataConfig struct {
	RatingsCSV string `toml:"ratings_csv"`
	DiaryCSV   string `toml:"diary_csv"`
}

// EnrichmentConfig tunes the background cover-art passes.
type EnrichmentConfig struct {
	Enabled           bool    `toml:"enabled"`
	AlbumBatchSize    int     `toml:"album_batch_size"`
	AlbumBatchDelayMS int     `toml:"album_batch_delay_ms"`
	MovieBatchSize    int     `toml:"movie_batch_size"`
	MovieBatchDelayMS int     `toml:"movie_batch_delay_ms"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// AlbumBatchDelay returns the pause between album batches.
func (e EnrichmentConfig) AlbumBatchDelay() time.Duration {
	return time.Duration(e.AlbumBatchDelayMS) * time.Millisecond
}

// MovieBatchDelay returns the pause between movie batches.
func (e EnrichmentConfig) MovieBatchDelay() time.Duration {
	return time.Duration(e.MovieBatchDelayMS) * time.Millisecond
}

// CatalogConfig holds the movie bucketing windows.
type CatalogConfig struct {
	RecentReleaseYears    int `toml:"recent_release_years"`
	RecentlyWatchedMonths int `toml:"recently_watched_months"`
	RecentlyWatchedLimit  int `toml:"recently_watched_limit"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults, and credential environment variables are applied last.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.ApplyEnv(os.Getenv)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// ApplyEnv overrides credentials with SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and TMDB_API_KEY when set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("SPOTIFY_CLIENT_ID")); v != "" {
		c.Credentials.Spotify.ClientID = v
	}
	if v := strings.TrimSpace(getenv("SPOTIFY_CLIENT_SECRET")); v != "" {
		c.Credentials.Spotify.ClientSecret = v
	}
	if v := strings.TrimSpace(getenv("TMDB_API_KEY")); v != "" {
		c.Credentials.TMDB.APIKey = v
	}
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Enrichment.AlbumBatchSize <= 0 || c.Enrichment.MovieBatchSize <= 0 {
		return fmt.Errorf("%w: batch sizes must be positive", ErrInvalidConfig)
	}
	if c.Enrichment.AlbumBatchDelayMS < 0 || c.Enrichment.MovieBatchDelayMS < 0 {
		return fmt.Errorf("%w: batch delays must not be negative", ErrInvalidConfig)
	}
	if c.Catalog.RecentlyWatchedLimit <= 0 {
		return fmt.Errorf("%w: recently_watched_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
