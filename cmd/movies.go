package main

import (
	"context"
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/formatter"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/ui"
	"github.com/urfave/cli/v3"
)

// MovieBuckets reports category sizes, or lists one category in its display order.
func (r *Runner) MovieBuckets(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.buildCatalog()
	if err != nil {
		return err
	}

	if name := cmd.String("category"); name != "" {
		category, ok := models.ParseCategory(name)
		if !ok {
			return fmt.Errorf("%w: unknown category %q", shared.ErrInvalidArgument, name)
		}
		r.writePlain("%s", formatter.MoviesToMarkdown(string(category), catalog.MoviesByCategory(category)))
		return nil
	}

	report := ui.NewReport("Movies").Add("Total", len(catalog.Movies()), ui.Plain)
	for _, c := range models.Categories {
		report.Count(string(c), len(catalog.MoviesByCategory(c)), ui.Warning)
	}
	report.Count("recently-watched view", len(catalog.RecentlyWatched()), ui.Warning)
	report.Count("recently-released view", len(catalog.RecentlyReleased()), ui.Warning)

	r.writePlain("%s", report.Render())
	return nil
}
