package store

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/ratings"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

// Options holds the windows used by the derived movie views.
type Options struct {
	RecentReleaseYears    int
	RecentlyWatchedMonths int
	RecentlyWatchedLimit  int
}

// DefaultOptions matches the catalog defaults in config.example.toml.
func DefaultOptions() Options {
	return Options{RecentReleaseYears: 1, RecentlyWatchedMonths: 6, RecentlyWatchedLimit: 20}
}

// Option configures a [Store].
type Option func(*Store)

// WithClock overrides the time source used for creation stamps and recency windows.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the record ID source.
func WithIDGenerator(id func() string) Option {
	return func(s *Store) { s.newID = id }
}

// WithOptions sets the recency windows.
func WithOptions(o Options) Option {
	return func(s *Store) { s.opts = o }
}

// Store holds every catalog record in memory.
type Store struct {
	mu sync.RWMutex

	albums        []*models.Album
	movies        []*models.Movie
	watched       []string
	entertainment []models.EntertainmentItem
	contacts      []models.ContactSubmission
	recs          []models.Recommendation

	now   func() time.Time
	newID func() string
	opts  Options
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: shared.GenerateID,
		opts:  DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Albums returns every album in insertion order.
func (s *Store) Albums() []models.Album {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Album, 0, len(s.albums))
	for _, a := range s.albums {
		out = append(out, a.Clone())
	}
	return out
}

// AlbumsByGenre returns albums whose primary or secondary genres include genre.
// The [models.FavoritesGenre] pseudo-genre selects favorites instead.
func (s *Store) AlbumsByGenre(genre string) []models.Album {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favorites := genre == models.FavoritesGenre
	out := []models.Album{}
	for _, a := range s.albums {
		if favorites && a.IsFavorite || !favorites && a.HasGenre(genre) {
			out = append(out, a.Clone())
		}
	}
	return out
}

// Album returns a single album by ID.
func (s *Store) Album(id string) (models.Album, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findAlbum(id)
	if a == nil {
		return models.Album{}, false
	}
	return a.Clone(), true
}

// CreateAlbum inserts a, assigning its ID and creation time. The primary genre defaults to the
// first listed genre, or "other".
func (s *Store) CreateAlbum(a models.Album) models.Album {
	a = a.Clone()
	a.ID = s.newID()
	a.CreatedAt = s.now()
	if a.Genre == "" {
		a.Genre = "other"
		if len(a.Genres) > 0 {
			a.Genre = a.Genres[0]
		}
	}

	s.mu.Lock()
	s.albums = append(s.albums, &a)
	s.mu.Unlock()

	return a.Clone()
}

// SetAlbumCover sets the cover image of an album.
func (s *Store) SetAlbumCover(id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAlbum(id)
	if a == nil {
		return fmt.Errorf("%w: album %s", shared.ErrNotFound, id)
	}
	a.ImageURL = url
	return nil
}

// RenameAlbum replaces the title and artist of an album. Empty values leave the field unchanged.
func (s *Store) RenameAlbum(id, title, artist string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findAlbum(id)
	if a == nil {
		return fmt.Errorf("%w: album %s", shared.ErrNotFound, id)
	}
	if title != "" {
		a.Title = title
	}
	if artist != "" {
		a.Artist = artist
	}
	return nil
}

func (s *Store) findAlbum(id string) *models.Album {
	i := slices.IndexFunc(s.albums, func(a *models.Album) bool { return a.ID == id })
	if i < 0 {
		return nil
	}
	return s.albums[i]
}

// Movies returns every movie in insertion order.
func (s *Store) Movies() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m.Clone())
	}
	return out
}

// MoviesByCategory returns the movies in category, ordered by the category's sort rule.
func (s *Store) MoviesByCategory(category models.Category) []models.Movie {
	s.mu.RLock()
	out := []models.Movie{}
	for _, m := range s.movies {
		if m.Category == category {
			out = append(out, m.Clone())
		}
	}
	s.mu.RUnlock()

	ratings.SortByCategory(out, category)
	return out
}

// Movie returns a single movie by ID.
func (s *Store) Movie(id string) (models.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.findMovie(id)
	if m == nil {
		return models.Movie{}, false
	}
	return m.Clone(), true
}

// CreateMovie inserts m, assigning its ID and creation time.
func (s *Store) CreateMovie(m models.Movie) models.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertMovie(m).Clone()
}

func (s *Store) insertMovie(m models.Movie) *models.Movie {
	m = m.Clone()
	m.ID = s.newID()
	m.CreatedAt = s.now()
	s.movies = append(s.movies, &m)
	return &m
}

// SetMoviePoster sets the poster image of a movie.
func (s *Store) SetMoviePoster(id, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.findMovie(id)
	if m == nil {
		return fmt.Errorf("%w: movie %s", shared.ErrNotFound, id)
	}
	m.ImageURL = url
	return nil
}

func (s *Store) findMovie(id string) *models.Movie {
	i := slices.IndexFunc(s.movies, func(m *models.Movie) bool { return m.ID == id })
	if i < 0 {
		return nil
	}
	return s.movies[i]
}

// LinkDiary builds the recently-watched view from diary entries, most recent first.
//
// An entry matching a stored movie by title and year stamps that movie with its logged date. An entry
// with no match becomes a new recently-watched movie. Each movie appears once, and the view keeps only
// the most recent entries up to the configured limit. It returns the number of movies created.
func (s *Store) LinkDiary(entries []ratings.DiaryEntry) int {
	entries = slices.Clone(entries)
	slices.SortStableFunc(entries, func(a, b ratings.DiaryEntry) int {
		return b.Logged.Compare(a.Logged)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		created int
		ids     []string
		seen    = map[string]bool{}
	)
	for _, e := range entries {
		i := slices.IndexFunc(s.movies, func(m *models.Movie) bool {
			return m.Title == e.Title && m.Year == e.Year
		})

		var m *models.Movie
		if i >= 0 {
			m = s.movies[i]
			if seen[m.ID] {
				continue
			}
			logged := e.Logged
			m.WatchedDate = &logged
		} else {
			logged := e.Logged
			m = s.insertMovie(models.Movie{
				Title:         e.Title,
				Year:          e.Year,
				Rating:        e.Rating,
				Category:      models.CategoryRecentlyWatched,
				LetterboxdURL: e.LetterboxdURL,
				WatchedDate:   &logged,
			})
			created++
		}

		seen[m.ID] = true
		ids = append(ids, m.ID)
	}

	if limit := s.opts.RecentlyWatchedLimit; limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	s.watched = ids
	return created
}

// RecentlyWatched returns the diary view built by [Store.LinkDiary].
func (s *Store) RecentlyWatched() []models.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Movie, 0, len(s.watched))
	for _, id := range s.watched {
		if m := s.findMovie(id); m != nil {
			out = append(out, m.Clone())
		}
	}
	return out
}

// RecentlyReleased returns movies released within the release window and watched within the
// recently-watched window, most recently watched first.
func (s *Store) RecentlyReleased() []models.Movie {
	now := s.now()
	minYear := now.Year() - s.opts.RecentReleaseYears
	since := now.AddDate(0, -s.opts.RecentlyWatchedMonths, 0)

	s.mu.RLock()
	out := []models.Movie{}
	for _, m := range s.movies {
		if m.Year == 0 || m.Year < minYear || m.WatchedDate == nil || m.WatchedDate.Before(since) {
			continue
		}
		out = append(out, m.Clone())
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.Movie) int {
		return b.Watched().Compare(a.Watched())
	})
	if limit := s.opts.RecentlyWatchedLimit; limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Entertainment returns every entertainment item in insertion order.
func (s *Store) Entertainment() []models.EntertainmentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.entertainment)
}

// EntertainmentByCategory returns the items tagged category.
func (s *Store) EntertainmentByCategory(category string) []models.EntertainmentItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.EntertainmentItem{}
	for _, item := range s.entertainment {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// CreateEntertainmentItem inserts item, assigning its ID and creation time.
func (s *Store) CreateEntertainmentItem(item models.EntertainmentItem) models.EntertainmentItem {
	item.ID = s.newID()
	item.CreatedAt = s.now()

	s.mu.Lock()
	s.entertainment = append(s.entertainment, item)
	s.mu.Unlock()

	return item
}

// CreateContactSubmission stores validated contact input.
func (s *Store) CreateContactSubmission(in models.ContactInput) models.ContactSubmission {
	sub := models.NewContactSubmission(s.newID(), in, s.now())

	s.mu.Lock()
	s.contacts = append(s.contacts, sub)
	s.mu.Unlock()

	return sub
}

// ContactSubmissions returns every stored contact submission.
func (s *Store) ContactSubmissions() []models.ContactSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.contacts)
}

// CreateRecommendation stores validated recommendation input.
func (s *Store) CreateRecommendation(in models.RecommendationInput) models.Recommendation {
	rec := models.NewRecommendation(s.newID(), in, s.now())

	s.mu.Lock()
	s.recs = append(s.recs, rec)
	s.mu.Unlock()

	return rec
}

// Recommendations returns every stored recommendation.
func (s *Store) Recommendations() []models.Recommendation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.recs)
}

// Stats counts the stored records.
type Stats struct {
	Albums          int `json:"albums"`
	AlbumCovers     int `json:"albumCovers"`
	Movies          int `json:"movies"`
	MoviePosters    int `json:"moviePosters"`
	Entertainment   int `json:"entertainment"`
	Contacts        int `json:"contacts"`
	Recommendations int `json:"recommendations"`
}

// Stats returns record counts, including how many albums and movies have cover art.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Albums:          len(s.albums),
		Movies:          len(s.movies),
		Entertainment:   len(s.entertainment),
		Contacts:        len(s.contacts),
		Recommendations: len(s.recs),
	}
	for _, a := range s.albums {
		if a.ImageURL != "" {
			st.AlbumCovers++
		}
	}
	for _, m := range s.movies {
		if m.ImageURL != "" {
			st.MoviePosters++
		}
	}
	return st
}
