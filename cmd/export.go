package main

import (
	"context"
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/formatter"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/urfave/cli/v3"
)

// ExportAlbums writes the album list, optionally filtered by genre.
func (r *Runner) ExportAlbums(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}

	albums := catalog.Albums()
	if genre := cmd.String("genre"); genre != "" {
		albums = catalog.AlbumsByGenre(genre)
	}

	data, err := formatter.Albums(format, albums)
	if err != nil {
		return err
	}
	return r.emit(cmd.String("output"), data)
}

// ExportMovies writes the movie list, optionally one category in its display order.
func (r *Runner) ExportMovies(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}

	heading := "Movies"
	movies := catalog.Movies()
	if name := cmd.String("category"); name != "" {
		category, ok := models.ParseCategory(name)
		if !ok {
			return fmt.Errorf("%w: unknown category %q", shared.ErrInvalidArgument, name)
		}
		heading = string(category)
		movies = catalog.MoviesByCategory(category)
	}

	data, err := formatter.Movies(format, heading, movies)
	if err != nil {
		return err
	}
	return r.emit(cmd.String("output"), data)
}

// emit writes data to path, or to the runner output when path is empty.
func (r *Runner) emit(path string, data []byte) error {
	if path == "" {
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := formatter.WriteFile(path, data); err != nil {
		return err
	}
	r.logger.Info("export written", "path", path, "bytes", len(data))
	return nil
}
