package main

import (
	"fmt"

	"github.com/hlieber45/harrisonlieber-site/internal/ratings"
	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/store"
	"github.com/hlieber45/harrisonlieber-site/internal/tasks"
)

// buildCatalog seeds a store with the album collection and entertainment items, then loads the
// ratings and diary exports named in the config.
func (r *Runner) buildCatalog() (*store.Store, error) {
	c := r.config.Catalog
	s := store.New(
		store.WithClock(r.now),
		store.WithOptions(store.Options{
			RecentReleaseYears:    c.RecentReleaseYears,
			RecentlyWatchedMonths: c.RecentlyWatchedMonths,
			RecentlyWatchedLimit:  c.RecentlyWatchedLimit,
		}),
	)

	seed, err := store.LoadSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to load seed catalog: %w", err)
	}
	seed.Apply(s)

	store.LoadMovies(s, store.MovieSources{
		RatingsPath: r.config.Data.RatingsCSV,
		DiaryPath:   r.config.Data.DiaryCSV,
	}, ratings.Options{
		Now:                   r.now(),
		RecentReleaseYears:    c.RecentReleaseYears,
		RecentlyWatchedMonths: c.RecentlyWatchedMonths,
	}, r.logger)

	return s, nil
}

// openCoverRepository opens the cover cache database and applies migrations.
func (r *Runner) openCoverRepository() (*repositories.CoverRepository, func(), error) {
	path := r.config.Database.Path
	if path == "" {
		return nil, nil, fmt.Errorf("%w: database.path is empty", shared.ErrMissingConfig)
	}

	db, err := shared.NewDatabase(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewCoverRepository(db), func() { db.Close() }, nil
}

// openCoverCache returns the enrichers' cache, or nil when the database is disabled or unusable.
func (r *Runner) openCoverCache(disabled bool) (tasks.CoverCacher, func()) {
	noop := func() {}
	if disabled || r.config.Database.Path == "" {
		return nil, noop
	}

	repo, closeDB, err := r.openCoverRepository()
	if err != nil {
		r.logger.Warn("cover cache disabled", "error", err)
		return nil, noop
	}
	return repositories.NewCoverCacheAdapter(repo), closeDB
}

func (r *Runner) albumEnricher(s *store.Store, cache tasks.CoverCacher) *tasks.AlbumEnricher {
	e := r.config.Enrichment
	return tasks.NewAlbumEnricher(s, r.albums, cache, r.logger, tasks.Opts{
		BatchSize:         e.AlbumBatchSize,
		BatchDelay:        e.AlbumBatchDelay(),
		RequestsPerSecond: e.RequestsPerSecond,
	})
}

func (r *Runner) movieEnricher(s *store.Store, cache tasks.CoverCacher) *tasks.MovieEnricher {
	e := r.config.Enrichment
	return tasks.NewMovieEnricher(s, r.posters, cache, r.logger, tasks.Opts{
		BatchSize:         e.MovieBatchSize,
		BatchDelay:        e.MovieBatchDelay(),
		RequestsPerSecond: e.RequestsPerSecond,
	})
}
