package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Port != 5000 {
			t.Errorf("expected server port 5000, got %d", config.Server.Port)
		}
		if config.Enrichment.AlbumBatchSize != 3 {
			t.Errorf("expected album batch size 3, got %d", config.Enrichment.AlbumBatchSize)
		}
		if config.Enrichment.MovieBatchSize != 10 {
			t.Errorf("expected movie batch size 10, got %d", config.Enrichment.MovieBatchSize)
		}
		if config.Catalog.RecentlyWatchedLimit != 20 {
			t.Errorf("expected recently watched limit 20, got %d", config.Catalog.RecentlyWatchedLimit)
		}
		if config.Credentials.TMDB.ImageBaseURL != "https://image.tmdb.org/t/p/w500" {
			t.Errorf("unexpected image base url %s", config.Credentials.TMDB.ImageBaseURL)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should validate: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "")
		t.Setenv("TMDB_API_KEY", "")

		configPath := filepath.Join(t.TempDir(), "config.toml")
		testConfig := `[server]
host = "0.0.0.0"
port = 8080

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"

[credentials.tmdb]
api_key = "tmdb_key"

[enrichment]
album_batch_size = 5
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}
		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Enrichment.AlbumBatchSize != 5 {
			t.Errorf("expected album batch size 5, got %d", config.Enrichment.AlbumBatchSize)
		}
		if config.Enrichment.MovieBatchSize != 10 {
			t.Errorf("expected default movie batch size to survive, got %d", config.Enrichment.MovieBatchSize)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig Invalid Port", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[server]\nport = 0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		config := DefaultConfig()
		env := map[string]string{
			"SPOTIFY_CLIENT_ID":     "env_id",
			"SPOTIFY_CLIENT_SECRET": "env_secret",
			"TMDB_API_KEY":          " env_key ",
		}
		config.ApplyEnv(func(k string) string { return env[k] })

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env_id, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected env_secret, got %s", config.Credentials.Spotify.ClientSecret)
		}
		if config.Credentials.TMDB.APIKey != "env_key" {
			t.Errorf("expected trimmed env_key, got %s", config.Credentials.TMDB.APIKey)
		}
	})

	t.Run("Batch Delays", func(t *testing.T) {
		config := DefaultConfig()
		if config.Enrichment.AlbumBatchDelay().Milliseconds() != 500 {
			t.Errorf("expected 500ms album delay, got %v", config.Enrichment.AlbumBatchDelay())
		}
		if config.Enrichment.MovieBatchDelay().Seconds() != 1 {
			t.Errorf("expected 1s movie delay, got %v", config.Enrichment.MovieBatchDelay())
		}
	})
}
