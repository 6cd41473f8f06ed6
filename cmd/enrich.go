package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/formatter"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/tasks"
	"github.com/hlieber45/harrisonlieber-site/internal/ui"
	"github.com/urfave/cli/v3"
)

// EnrichAlbums runs the album cover pass and prints a summary.
func (r *Runner) EnrichAlbums(ctx context.Context, cmd *cli.Command) error {
	if r.albums == nil {
		return fmt.Errorf("%w: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET", shared.ErrMissingCredentials)
	}

	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}
	cache, closeCache := r.openCoverCache(cmd.Bool("no-cache"))
	defer closeCache()

	result, err := r.runWithProgress(ctx, r.albumEnricher(catalog, cache).Run)
	if err != nil && !errors.Is(err, shared.ErrServiceUnavailable) {
		return fmt.Errorf("album enrichment failed: %w", err)
	}
	r.printResult("Album covers", result)

	if path := cmd.String("output"); path != "" {
		return r.saveJSON(path, catalog.Albums())
	}
	return nil
}

// EnrichMovies runs the movie poster pass and prints a summary.
func (r *Runner) EnrichMovies(ctx context.Context, cmd *cli.Command) error {
	if r.posters == nil {
		return fmt.Errorf("%w: set TMDB_API_KEY", shared.ErrMissingCredentials)
	}

	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}
	cache, closeCache := r.openCoverCache(cmd.Bool("no-cache"))
	defer closeCache()

	result, err := r.runWithProgress(ctx, r.movieEnricher(catalog, cache).Run)
	if err != nil && !errors.Is(err, shared.ErrServiceUnavailable) {
		return fmt.Errorf("movie enrichment failed: %w", err)
	}
	r.printResult("Movie posters", result)

	if path := cmd.String("output"); path != "" {
		return r.saveJSON(path, catalog.Movies())
	}
	return nil
}

// runWithProgress prints progress updates while run executes.
func (r *Runner) runWithProgress(ctx context.Context, run func(context.Context, chan<- tasks.ProgressUpdate) (tasks.Result, error)) (tasks.Result, error) {
	progress := make(chan tasks.ProgressUpdate, 32)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("→ %s\n", update.Message)
		}
	}()

	result, err := run(ctx, progress)
	close(progress)
	<-done
	return result, err
}

func (r *Runner) printResult(title string, result tasks.Result) {
	report := ui.NewReport(title).
		Add("Total", result.Total, ui.Plain).
		Count("Found", result.Found, ui.Plain).
		Count("Manual", result.Manual, ui.Plain).
		Count("Cached", result.Cached, ui.Plain).
		Add("Skipped", result.Skipped, ui.Plain)

	missing := ui.Good
	if result.Missing > 0 {
		missing = ui.Warning
	}
	report.Add("Missing", result.Missing, missing)
	if result.Errors > 0 {
		report.Add("Errors", result.Errors, ui.Bad)
	}

	r.writePlain("\n%s", report.Render())
	r.writePlain("%s", ui.List("Missing:", result.Titles))
}

func (r *Runner) saveJSON(path string, v any) error {
	data, err := formatter.ToJSON(v)
	if err != nil {
		return err
	}
	if err := formatter.WriteFile(path, data); err != nil {
		return err
	}
	r.writePlain("✓ Saved %s\n", path)
	return nil
}
