package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/ratings"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

var testNow = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func newTestStore() *Store {
	var n int
	var mu sync.Mutex
	return New(
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func date(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func titles(movies []models.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestAlbums(t *testing.T) {
	s := newTestStore()
	s.CreateAlbum(models.Album{Title: "Blonde", Artist: "Frank Ocean", Genres: []string{"r&b"}})
	s.CreateAlbum(models.Album{Title: "ANTI", Artist: "Rihanna", Genres: []string{"r&b", "pop"}, IsFavorite: true})
	s.CreateAlbum(models.Album{Title: "Abbey Road", Artist: "The Beatles", Genre: "rock"})
	s.CreateAlbum(models.Album{Title: "Mystery", Artist: "Nobody"})

	t.Run("Create Assigns Identity", func(t *testing.T) {
		all := s.Albums()
		if all[0].ID != "id-1" || !all[0].CreatedAt.Equal(testNow) {
			t.Errorf("unexpected identity %s %v", all[0].ID, all[0].CreatedAt)
		}
		if all[1].Genre != "r&b" {
			t.Errorf("expected primary genre from first genre, got %s", all[1].Genre)
		}
		if all[3].Genre != "other" {
			t.Errorf("expected fallback genre other, got %s", all[3].Genre)
		}
	})

	t.Run("Genre Filter Is A Subset", func(t *testing.T) {
		all := s.Albums()
		for _, genre := range []string{"r&b", "pop", "rock", "jazz", "other"} {
			for _, a := range s.AlbumsByGenre(genre) {
				if !a.HasGenre(genre) {
					t.Errorf("%s: album %q lacks genre", genre, a.Title)
				}
				found := false
				for _, b := range all {
					if reflect.DeepEqual(a, b) {
						found = true
					}
				}
				if !found {
					t.Errorf("%s: album %q not in full list", genre, a.Title)
				}
			}
		}
	})

	t.Run("Secondary Genre", func(t *testing.T) {
		pop := s.AlbumsByGenre("pop")
		if len(pop) != 1 || pop[0].Title != "ANTI" {
			t.Errorf("expected ANTI for pop, got %+v", pop)
		}
	})

	t.Run("Favorites Pseudo Genre", func(t *testing.T) {
		favs := s.AlbumsByGenre(models.FavoritesGenre)
		if len(favs) != 1 || !favs[0].IsFavorite {
			t.Errorf("expected only favorites, got %+v", favs)
		}
	})

	t.Run("Unknown Genre Is Empty Not Nil", func(t *testing.T) {
		got := s.AlbumsByGenre("polka")
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty slice, got %#v", got)
		}
	})

	t.Run("Reads Are Idempotent", func(t *testing.T) {
		first := s.Albums()
		first[0].Title = "mutated"
		first[1].Genres[0] = "mutated"

		if second := s.Albums(); second[0].Title != "Blonde" || second[1].Genres[0] != "r&b" {
			t.Error("mutating a read result changed the store")
		}
		if !reflect.DeepEqual(s.Albums(), s.Albums()) {
			t.Error("expected identical consecutive reads")
		}
	})

	t.Run("SetAlbumCover", func(t *testing.T) {
		if err := s.SetAlbumCover("id-1", "https://img/blonde.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, ok := s.Album("id-1")
		if !ok || a.ImageURL != "https://img/blonde.jpg" {
			t.Errorf("cover not set: %+v", a)
		}

		if err := s.SetAlbumCover("missing", "x"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RenameAlbum", func(t *testing.T) {
		if err := s.RenameAlbum("id-2", "ANTI (Deluxe)", ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a, _ := s.Album("id-2")
		if a.Title != "ANTI (Deluxe)" || a.Artist != "Rihanna" {
			t.Errorf("unexpected rename result %+v", a)
		}

		if err := s.RenameAlbum("missing", "x", "y"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestMoviesByCategory(t *testing.T) {
	s := newTestStore()
	s.CreateMovie(models.Movie{Title: "Zeta", Rating: 5, Category: models.CategoryFavorites})
	s.CreateMovie(models.Movie{Title: "Alpha", Rating: 5, Category: models.CategoryFavorites})
	s.CreateMovie(models.Movie{Title: "Beta", Rating: 4, Category: models.CategoryOther})

	t.Run("Favorites Example", func(t *testing.T) {
		got := s.MoviesByCategory(models.CategoryFavorites)
		if !reflect.DeepEqual(titles(got), []string{"Alpha", "Zeta"}) {
			t.Errorf("expected [Alpha Zeta], got %v", titles(got))
		}
	})

	t.Run("Every Element Matches", func(t *testing.T) {
		for _, c := range models.Categories {
			for _, m := range s.MoviesByCategory(c) {
				if m.Category != c {
					t.Errorf("%s: got movie in %s", c, m.Category)
				}
			}
		}
	})

	t.Run("Unknown Category Is Empty", func(t *testing.T) {
		if got := s.MoviesByCategory("nope"); len(got) != 0 {
			t.Errorf("expected none, got %v", titles(got))
		}
	})

	t.Run("SetMoviePoster", func(t *testing.T) {
		if err := s.SetMoviePoster("id-3", "https://img/beta.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m, _ := s.Movie("id-3")
		if m.ImageURL != "https://img/beta.jpg" {
			t.Errorf("poster not set: %+v", m)
		}
		if err := s.SetMoviePoster("missing", "x"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestLinkDiary(t *testing.T) {
	s := newTestStore()
	s.CreateMovie(models.Movie{Title: "Dune", Year: 2021, Rating: 4.5, Category: models.CategoryOther, WatchedDate: date("2024-01-01")})
	s.CreateMovie(models.Movie{Title: "Dune", Year: 1984, Rating: 2, Category: models.CategoryOther})

	entries := []ratings.DiaryEntry{
		{Title: "Dune", Year: 2021, Logged: *date("2025-06-01")},
		{Title: "Sinners", Year: 2025, Rating: 4, Logged: *date("2025-07-15")},
		{Title: "Dune", Year: 2021, Logged: *date("2025-03-01")},
		{Title: "Sinners", Year: 2025, Logged: *date("2025-05-01")},
	}

	created := s.LinkDiary(entries)
	if created != 1 {
		t.Errorf("expected 1 synthesized movie, got %d", created)
	}

	got := s.RecentlyWatched()
	if !reflect.DeepEqual(titles(got), []string{"Sinners", "Dune"}) {
		t.Fatalf("unexpected order %v", titles(got))
	}

	t.Run("Existing Movie Stamped With Latest Log", func(t *testing.T) {
		if got[1].Year != 2021 || got[1].Watched().Format("2006-01-02") != "2025-06-01" {
			t.Errorf("unexpected linked movie %+v", got[1])
		}
		if got[1].Category != models.CategoryOther {
			t.Errorf("expected category unchanged, got %s", got[1].Category)
		}
	})

	t.Run("Synthesized Movie", func(t *testing.T) {
		if got[0].Category != models.CategoryRecentlyWatched || got[0].Rating != 4 || got[0].ID == "" {
			t.Errorf("unexpected synthesized movie %+v", got[0])
		}
		bucket := s.MoviesByCategory(models.CategoryRecentlyWatched)
		if len(bucket) != 1 || bucket[0].Title != "Sinners" {
			t.Errorf("expected Sinners in recently-watched category, got %v", titles(bucket))
		}
	})

	t.Run("Other Year Untouched", func(t *testing.T) {
		m, _ := s.Movie("id-2")
		if m.WatchedDate != nil {
			t.Errorf("expected 1984 Dune untouched, got %v", m.WatchedDate)
		}
	})

	t.Run("Capped", func(t *testing.T) {
		s := New(WithOptions(Options{RecentlyWatchedLimit: 20, RecentlyWatchedMonths: 6, RecentReleaseYears: 1}))
		var entries []ratings.DiaryEntry
		for i := range 25 {
			entries = append(entries, ratings.DiaryEntry{
				Title:  fmt.Sprintf("Film %02d", i),
				Year:   2020,
				Logged: testNow.AddDate(0, 0, -i),
			})
		}
		s.LinkDiary(entries)

		got := s.RecentlyWatched()
		if len(got) != 20 {
			t.Fatalf("expected 20, got %d", len(got))
		}
		if got[0].Title != "Film 00" || got[19].Title != "Film 19" {
			t.Errorf("expected most recent first, got %s..%s", got[0].Title, got[19].Title)
		}
	})
}

func TestRecentlyReleased(t *testing.T) {
	s := newTestStore()
	s.CreateMovie(models.Movie{Title: "New Early", Year: 2025, WatchedDate: date("2025-03-01")})
	s.CreateMovie(models.Movie{Title: "New Late", Year: 2024, WatchedDate: date("2025-07-01")})
	s.CreateMovie(models.Movie{Title: "Old Film", Year: 2010, WatchedDate: date("2025-07-10")})
	s.CreateMovie(models.Movie{Title: "Watched Long Ago", Year: 2025, WatchedDate: date("2024-12-01")})
	s.CreateMovie(models.Movie{Title: "Never Watched", Year: 2025})

	got := s.RecentlyReleased()
	if !reflect.DeepEqual(titles(got), []string{"New Late", "New Early"}) {
		t.Errorf("unexpected result %v", titles(got))
	}
}

func TestEntertainment(t *testing.T) {
	s := newTestStore()
	s.CreateEntertainmentItem(models.EntertainmentItem{Title: "Dune", Category: "movies", MediaURL: "a", MediaType: models.MediaImage})
	s.CreateEntertainmentItem(models.EntertainmentItem{Title: "Hammer Time", Category: "comedy", MediaURL: "b", MediaType: models.MediaGIF})

	if len(s.Entertainment()) != 2 {
		t.Errorf("expected 2 items, got %d", len(s.Entertainment()))
	}
	comedy := s.EntertainmentByCategory("comedy")
	if len(comedy) != 1 || comedy[0].Title != "Hammer Time" || comedy[0].ID != "id-2" {
		t.Errorf("unexpected comedy items %+v", comedy)
	}
}

func TestSubmissions(t *testing.T) {
	s := newTestStore()

	sub := s.CreateContactSubmission(models.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	if sub.ID == "" || !sub.CreatedAt.Equal(testNow) || sub.Name != "Ada" {
		t.Errorf("unexpected submission %+v", sub)
	}
	if got := s.ContactSubmissions(); len(got) != 1 || got[0] != sub {
		t.Errorf("unexpected submissions %+v", got)
	}

	rec := s.CreateRecommendation(models.RecommendationInput{Title: "Blonde", Type: "album"})
	if got := s.Recommendations(); len(got) != 1 || got[0] != rec {
		t.Errorf("unexpected recommendations %+v", got)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore()
	a := s.CreateAlbum(models.Album{Title: "A"})
	s.CreateAlbum(models.Album{Title: "B"})
	s.CreateMovie(models.Movie{Title: "M"})
	_ = s.SetAlbumCover(a.ID, "x")

	st := s.Stats()
	if st.Albums != 2 || st.AlbumCovers != 1 || st.Movies != 1 || st.MoviePosters != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore()
	for i := range 10 {
		s.CreateAlbum(models.Album{Title: fmt.Sprintf("Album %d", i), Genres: []string{"pop"}})
	}
	ids := []string{}
	for _, a := range s.Albums() {
		ids = append(ids, a.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.SetAlbumCover(id, "cover")
		}()
		go func() {
			defer wg.Done()
			_ = s.AlbumsByGenre("pop")
		}()
	}
	wg.Wait()

	if s.Stats().AlbumCovers != 10 {
		t.Errorf("expected every cover set, got %d", s.Stats().AlbumCovers)
	}
}

func TestLoadMovies(t *testing.T) {
	dir := t.TempDir()
	ratingsPath := filepath.Join(dir, "ratings.csv")
	diaryPath := filepath.Join(dir, "diary.csv")

	ratingsCSV := "Date,Name,Year,Letterboxd URI,Rating\n" +
		"2025-06-01,The Godfather,1972,https://boxd.it/a,5\n" +
		"2025-05-01,Sinners,2025,https://boxd.it/b,4\n"
	diaryCSV := "Date,Name,Year,Letterboxd URI,Rating,Rewatch,Tags,Watched Date\n" +
		"2025-07-01,Sinners,2025,https://boxd.it/b,4,,,2025-06-30\n" +
		"2025-07-20,Weapons,2025,https://boxd.it/c,3.5,,,\n"

	if err := os.WriteFile(ratingsPath, []byte(ratingsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(diaryPath, []byte(diaryCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := ratings.Options{Now: testNow, RecentReleaseYears: 1, RecentlyWatchedMonths: 6}

	t.Run("Both Files", func(t *testing.T) {
		s := newTestStore()
		res := LoadMovies(s, MovieSources{RatingsPath: ratingsPath, DiaryPath: diaryPath}, opts, shared.NewLogger(io.Discard))

		if res.Rated != 2 || res.Diary != 2 || res.Created != 1 {
			t.Errorf("unexpected result %+v", res)
		}
		if got := titles(s.RecentlyWatched()); !reflect.DeepEqual(got, []string{"Weapons", "Sinners"}) {
			t.Errorf("unexpected recently watched %v", got)
		}
		if got := titles(s.MoviesByCategory(models.CategoryRecentlyReleased)); !reflect.DeepEqual(got, []string{"Sinners"}) {
			t.Errorf("unexpected recently released %v", got)
		}
	})

	t.Run("Missing Files Degrade To Empty", func(t *testing.T) {
		s := newTestStore()
		res := LoadMovies(s, MovieSources{
			RatingsPath: filepath.Join(dir, "missing.csv"),
			DiaryPath:   filepath.Join(dir, "missing-diary.csv"),
		}, opts, shared.NewLogger(io.Discard))

		if res.Rated != 0 || len(s.Movies()) != 0 || len(s.RecentlyWatched()) != 0 {
			t.Errorf("expected empty store, got %+v", res)
		}
	})
}
