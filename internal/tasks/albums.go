package tasks

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hlieber45/harrisonlieber-site/internal/covers"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"github.com/hlieber45/harrisonlieber-site/internal/services"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
	"github.com/hlieber45/harrisonlieber-site/internal/store"
)

const albumSource = "Spotify"

// DefaultAlbumOpts matches the music catalog's tolerance: three lookups at a time, half a second apart.
func DefaultAlbumOpts() Opts {
	return Opts{BatchSize: 3, BatchDelay: 500 * time.Millisecond}
}

// AlbumEnricher fills missing album covers.
type AlbumEnricher struct {
	store    *store.Store
	searcher services.AlbumSearcher
	cache    CoverCacher
	logger   *log.Logger
	opts     Opts
}

// NewAlbumEnricher creates an enricher. searcher may be nil when credentials are absent, in which
// case only manual and cached covers are applied. cache may be nil.
func NewAlbumEnricher(s *store.Store, searcher services.AlbumSearcher, cache CoverCacher, logger *log.Logger, opts Opts) *AlbumEnricher {
	return &AlbumEnricher{
		store:    s,
		searcher: searcher,
		cache:    cache,
		logger:   shared.WithLogger(logger, "task", "albums"),
		opts:     opts,
	}
}

// Run executes one enrichment pass.
//
// Manual mappings always win, even over an existing cover. Albums that already have a cover are
// skipped, then the cache is consulted, and what remains is searched. A hit sets the cover and
// rewrites the title and artist to the catalog's spelling unless the title is preserved or the
// artist is a collaboration.
func (e *AlbumEnricher) Run(ctx context.Context, progress chan<- ProgressUpdate) (Result, error) {
	albums := e.store.Albums()
	t := &tally{Result: Result{Total: len(albums)}}

	var pending []models.Album
	for _, a := range albums {
		if url, ok := covers.ManualURL(a.Title, a.Artist); ok {
			if err := e.store.SetAlbumCover(a.ID, url); err != nil {
				e.logger.Warn("failed to apply manual cover", "title", a.Title, "error", err)
				continue
			}
			t.Manual++
			continue
		}
		if a.ImageURL != "" {
			t.Skipped++
			continue
		}
		pending = append(pending, a)
	}
	sendProgress(progress, manualUpdate(t.Manual))

	pending = e.fromCache(pending, t)
	sendProgress(progress, cacheUpdate(t.Cached, t.Cached+len(pending)))

	if len(pending) > 0 && e.searcher == nil {
		for _, a := range pending {
			t.missing(a.Title+" - "+a.Artist, false)
		}
		e.summarize(t.Result)
		sendProgress(progress, finishedUpdate(t.Result))
		return t.Result, shared.ErrServiceUnavailable
	}

	limiter := e.opts.limiter()
	onBatch := func(batch, batches int) {
		sendProgress(progress, batchUpdate(batch, batches, albumSource))
	}
	err := runBatches(ctx, len(pending), e.opts.BatchSize, e.opts.BatchDelay, onBatch, func(ctx context.Context, i int) {
		a := pending[i]
		label := a.Title + " - " + a.Artist

		if err := limiter.Wait(ctx); err != nil {
			t.missing(label, false)
			return
		}

		match, err := e.searcher.SearchAlbum(ctx, a.Title, a.Artist)
		switch {
		case err != nil:
			if !errors.Is(err, context.Canceled) {
				e.logger.Error("album search failed", "title", a.Title, "artist", a.Artist, "error", err)
			}
			t.missing(label, true)
		case match == nil || match.ImageURL == "":
			e.logger.Debug("no cover found", "title", a.Title, "artist", a.Artist)
			t.missing(label, false)
		default:
			e.apply(a, match)
			t.found()
		}
	})
	slices.Sort(t.Titles)

	e.summarize(t.Result)
	sendProgress(progress, finishedUpdate(t.Result))
	return t.Result, err
}

func (e *AlbumEnricher) fromCache(pending []models.Album, t *tally) []models.Album {
	if e.cache == nil {
		return pending
	}

	rest := pending[:0:0]
	for _, a := range pending {
		entry, ok := e.cache.CachedCover(repositories.KindAlbum, covers.Key(a.Title, a.Artist))
		if !ok {
			rest = append(rest, a)
			continue
		}
		if err := e.store.SetAlbumCover(a.ID, entry.ImageURL); err != nil {
			rest = append(rest, a)
			continue
		}
		e.rename(a, entry.Title, entry.Artist)
		t.Cached++
	}
	return rest
}

func (e *AlbumEnricher) apply(a models.Album, match *services.AlbumMatch) {
	if err := e.store.SetAlbumCover(a.ID, match.ImageURL); err != nil {
		e.logger.Warn("failed to set cover", "title", a.Title, "error", err)
		return
	}
	e.rename(a, match.Title, match.Artist)

	if e.cache != nil {
		entry := repositories.CoverEntry{
			Kind:     repositories.KindAlbum,
			Key:      covers.Key(a.Title, a.Artist),
			ImageURL: match.ImageURL,
			Title:    match.Title,
			Artist:   match.Artist,
			Source:   albumSource,
		}
		if err := e.cache.CacheCover(entry); err != nil {
			e.logger.Warn("failed to cache cover", "title", a.Title, "error", err)
		}
	}
	e.logger.Debug("found cover", "title", a.Title, "artist", a.Artist)
}

// rename applies the catalog spelling unless the title is preserved or the artist is a collaboration.
// Empty values leave the field unchanged.
func (e *AlbumEnricher) rename(a models.Album, title, artist string) {
	if covers.Preserved(a.Title) {
		title = ""
	}
	if covers.IsCollaboration(a.Artist) {
		artist = ""
	}
	if err := e.store.RenameAlbum(a.ID, title, artist); err != nil {
		e.logger.Warn("failed to rename album", "title", a.Title, "error", err)
	}
}

func (e *AlbumEnricher) summarize(r Result) {
	e.logger.Info("album covers",
		"total", r.Total, "found", r.Found, "manual", r.Manual,
		"cached", r.Cached, "skipped", r.Skipped, "missing", r.Missing, "errors", r.Errors)
	for _, title := range r.Titles {
		e.logger.Debug("missing cover", "album", title)
	}
}
