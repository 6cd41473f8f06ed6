package main

import (
	"context"
	"os"

	"github.com/hlieber45/harrisonlieber-site/internal/services"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	config.ApplyEnv(os.Getenv)
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config.toml, using defaults", "error", err)
		}
	}
	shared.SetLogLevel(logger, config.Log.Level)

	var albums services.AlbumSearcher
	if svc, err := services.NewSpotifyService(config.Credentials.Spotify); err == nil {
		albums = svc
	} else {
		logger.Debug("music catalog disabled", "error", err)
	}

	var posters services.PosterSearcher
	if svc, err := services.NewTMDBService(config.Credentials.TMDB,
		services.WithTMDBLogger(shared.WithLogger(logger, "service", "tmdb"))); err == nil {
		posters = svc
	} else {
		logger.Debug("film metadata disabled", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Albums:  albums,
		Posters: posters,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "site",
		Usage:    "Serve and maintain the portfolio catalog",
		Version:  "1.0.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
