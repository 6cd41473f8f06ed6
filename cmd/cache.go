package main

import (
	"context"
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/ui"
	"github.com/urfave/cli/v3"
)

func parseKind(kind string) (string, error) {
	switch kind {
	case "", repositories.KindAlbum, repositories.KindMovie:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: kind must be %q or %q", shared.ErrInvalidArgument, repositories.KindAlbum, repositories.KindMovie)
	}
}

// CacheStats prints how many covers are cached per kind.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	repo, closeDB, err := r.openCoverRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	counts, err := repo.Count()
	if err != nil {
		return err
	}

	report := ui.NewReport("Cover cache").Add("Database", r.config.Database.Path, ui.Plain)
	report.Count("Albums", counts[repositories.KindAlbum], ui.Plain)
	report.Count("Movies", counts[repositories.KindMovie], ui.Plain)
	r.writePlain("%s", report.Render())
	return nil
}

// CacheList prints cached covers, newest first.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	repo, closeDB, err := r.openCoverRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	entries, err := repo.List(kind)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}
	for _, e := range entries {
		r.writePlain("%-6s %-48s %s (%s)\n", e.Kind, e.Key, e.ImageURL, e.Source)
	}
	return nil
}

// CacheClear removes cached covers so the next pass searches again.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKind(cmd.String("kind"))
	if err != nil {
		return err
	}

	repo, closeDB, err := r.openCoverRepository()
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := repo.Clear(kind)
	if err != nil {
		return err
	}

	r.logger.Info("cleared cover cache", "kind", kind, "removed", n)
	r.writePlain("✓ Removed %d cached covers\n", n)
	return nil
}
