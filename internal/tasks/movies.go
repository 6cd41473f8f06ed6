package tasks

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hlieber45/harrisonlieber-site/internal/covers"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"github.com/hlieber45/harrisonlieber-site/internal/services"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/store"
)

const movieSource = "TMDB"

// DefaultMovieOpts searches ten films at a time with a one second pause.
func DefaultMovieOpts() Opts {
	return Opts{BatchSize: 10, BatchDelay: time.Second}
}

// MovieKey is the cover cache key for a film.
func MovieKey(title string, year int) string {
	return covers.Slug(title) + "-" + strconv.Itoa(year)
}

// MovieEnricher fills missing movie posters.
type MovieEnricher struct {
	store    *store.Store
	searcher services.PosterSearcher
	cache    CoverCacher
	logger   *log.Logger
	opts     Opts
}

// NewMovieEnricher creates an enricher. searcher may be nil when no API key is configured; cache may be nil.
func NewMovieEnricher(s *store.Store, searcher services.PosterSearcher, cache CoverCacher, logger *log.Logger, opts Opts) *MovieEnricher {
	return &MovieEnricher{
		store:    s,
		searcher: searcher,
		cache:    cache,
		logger:   shared.WithLogger(logger, "task", "movies"),
		opts:     opts,
	}
}

// Run executes one poster pass over every movie without an image.
func (e *MovieEnricher) Run(ctx context.Context, progress chan<- ProgressUpdate) (Result, error) {
	movies := e.store.Movies()
	t := &tally{Result: Result{Total: len(movies)}}

	var pending []models.Movie
	for _, m := range movies {
		if m.ImageURL != "" {
			t.Skipped++
			continue
		}
		pending = append(pending, m)
	}
	sendProgress(progress, manualUpdate(0))

	if e.cache != nil {
		rest := pending[:0:0]
		for _, m := range pending {
			entry, ok := e.cache.CachedCover(repositories.KindMovie, MovieKey(m.Title, m.Year))
			if ok && e.store.SetMoviePoster(m.ID, entry.ImageURL) == nil {
				t.Cached++
				continue
			}
			rest = append(rest, m)
		}
		pending = rest
	}
	sendProgress(progress, cacheUpdate(t.Cached, t.Cached+len(pending)))

	if len(pending) > 0 && e.searcher == nil {
		for _, m := range pending {
			t.missing(m.Title, false)
		}
		e.summarize(t.Result)
		sendProgress(progress, finishedUpdate(t.Result))
		return t.Result, shared.ErrServiceUnavailable
	}

	limiter := e.opts.limiter()
	onBatch := func(batch, batches int) {
		sendProgress(progress, batchUpdate(batch, batches, movieSource))
	}
	err := runBatches(ctx, len(pending), e.opts.BatchSize, e.opts.BatchDelay, onBatch, func(ctx context.Context, i int) {
		m := pending[i]
		if err := limiter.Wait(ctx); err != nil {
			t.missing(m.Title, false)
			return
		}

		url, err := e.searcher.SearchPoster(ctx, m.Title, m.Year)
		switch {
		case err != nil:
			if !errors.Is(err, context.Canceled) {
				e.logger.Error("poster search failed", "title", m.Title, "year", m.Year, "error", err)
			}
			t.missing(m.Title, true)
		case url == "":
			e.logger.Debug("no poster found", "title", m.Title, "year", m.Year)
			t.missing(m.Title, false)
		default:
			if err := e.store.SetMoviePoster(m.ID, url); err != nil {
				e.logger.Warn("failed to set poster", "title", m.Title, "error", err)
				t.missing(m.Title, false)
				return
			}
			if e.cache != nil {
				entry := repositories.CoverEntry{Kind: repositories.KindMovie, Key: MovieKey(m.Title, m.Year), ImageURL: url, Source: movieSource}
				if err := e.cache.CacheCover(entry); err != nil {
					e.logger.Warn("failed to cache poster", "title", m.Title, "error", err)
				}
			}
			t.found()
		}
	})
	slices.Sort(t.Titles)

	e.summarize(t.Result)
	sendProgress(progress, finishedUpdate(t.Result))
	return t.Result, err
}

func (e *MovieEnricher) summarize(r Result) {
	e.logger.Info("movie posters",
		"total", r.Total, "found", r.Found, "cached", r.Cached,
		"skipped", r.Skipped, "missing", r.Missing, "errors", r.Errors)
	for _, title := range r.Titles {
		e.logger.Debug("missing poster", "movie", title)
	}
}
