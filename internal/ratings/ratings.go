package ratings

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// MaxRating is the top of the half-star scale and the favorites threshold.
	MaxRating = 5.0
	// LowRating is the highest rating still bucketed as least-favorite.
	LowRating = 1.5

	dateLayout = "2006-01-02"
)

// Column names in the exported files.
const (
	ColDate   = "Date"
	ColName   = "Name"
	ColYear   = "Year"
	ColURI    = "Letterboxd URI"
	ColRating = "Rating"
	ColReview = "Review"
)

// Options carries the clock and windows used for bucketing.
type Options struct {
	Now                   time.Time
	RecentReleaseYears    int
	RecentlyWatchedMonths int
}

// DefaultOptions uses the current time, a one year release window and a six month diary window.
func DefaultOptions() Options {
	return Options{Now: time.Now(), RecentReleaseYears: 1, RecentlyWatchedMonths: 6}
}

// Categorize buckets a rated film. Ratings take priority over release year.
func Categorize(rating float64, year int, now time.Time, recentYears int) models.Category {
	switch {
	case rating == MaxRating:
		return models.CategoryFavorites
	case rating <= LowRating:
		return models.CategoryLeastFavorite
	case year >= now.Year()-recentYears:
		return models.CategoryRecentlyReleased
	default:
		return models.CategoryOther
	}
}

// LoadRatings reads the ratings export. Rows without a name, year, rating or URI are skipped.
//
// Returned movies have no ID or creation time; the store assigns both on insert.
func LoadRatings(r io.Reader, opts Options) ([]models.Movie, error) {
	t, err := readTable(r, ColName, ColYear, ColRating, ColURI)
	if err != nil {
		return nil, err
	}

	var movies []models.Movie
	for _, row := range t.rows {
		name := strings.ReplaceAll(t.col(row, ColName), `"`, "")
		year, _ := strconv.Atoi(t.col(row, ColYear))
		rating, _ := strconv.ParseFloat(t.col(row, ColRating), 64)
		uri := t.col(row, ColURI)

		if name == "" || year == 0 || rating == 0 || uri == "" {
			continue
		}
		if rating < 0 || rating > MaxRating {
			continue
		}

		movie := models.Movie{
			Title:         name,
			Year:          year,
			Rating:        rating,
			Category:      Categorize(rating, year, opts.Now, opts.RecentReleaseYears),
			LetterboxdURL: uri,
			Review:        t.col(row, ColReview),
		}
		if d, err := time.Parse(dateLayout, t.col(row, ColDate)); err == nil {
			movie.WatchedDate = &d
		}

		movies = append(movies, movie)
	}

	return movies, nil
}

// DiaryEntry is one logged viewing.
type DiaryEntry struct {
	Title         string
	Year          int
	Rating        float64
	LetterboxdURL string
	Logged        time.Time
}

// LoadDiary reads the diary export and keeps entries logged within the recently-watched window,
// most recently logged first.
func LoadDiary(r io.Reader, opts Options) ([]DiaryEntry, error) {
	t, err := readTable(r, ColDate, ColName, ColYear)
	if err != nil {
		return nil, err
	}

	cutoff := opts.Now.AddDate(0, -opts.RecentlyWatchedMonths, 0)

	var entries []DiaryEntry
	for _, row := range t.rows {
		logged, err := time.Parse(dateLayout, t.col(row, ColDate))
		if err != nil || logged.Before(cutoff) {
			continue
		}

		title := t.col(row, ColName)
		if title == "" {
			continue
		}

		entry := DiaryEntry{
			Title:         title,
			LetterboxdURL: t.col(row, ColURI),
			Logged:        logged,
		}
		entry.Year, _ = strconv.Atoi(t.col(row, ColYear))
		entry.Rating, _ = strconv.ParseFloat(t.col(row, ColRating), 64)

		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Logged.After(entries[j].Logged)
	})

	return entries, nil
}

// SortByCategory orders movies in place using the display rule of category.
//
//   - favorites: rating descending, then title
//   - least-favorite: rating ascending, then title
//   - recently-watched: watched date descending, then title
//   - recently-released: release year descending, then title
//   - anything else: title
func SortByCategory(movies []models.Movie, category models.Category) {
	titles := collate.New(language.English, collate.IgnoreCase)
	byTitle := func(a, b models.Movie) bool {
		return titles.CompareString(a.Title, b.Title) < 0
	}

	var less func(a, b models.Movie) bool
	switch category {
	case models.CategoryFavorites:
		less = func(a, b models.Movie) bool {
			if a.Rating != b.Rating {
				return a.Rating > b.Rating
			}
			return byTitle(a, b)
		}
	case models.CategoryLeastFavorite:
		less = func(a, b models.Movie) bool {
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
			return byTitle(a, b)
		}
	case models.CategoryRecentlyWatched:
		less = func(a, b models.Movie) bool {
			if wa, wb := a.Watched(), b.Watched(); !wa.Equal(wb) {
				return wa.After(wb)
			}
			return byTitle(a, b)
		}
	case models.CategoryRecentlyReleased:
		less = func(a, b models.Movie) bool {
			if a.Year != b.Year {
				return a.Year > b.Year
			}
			return byTitle(a, b)
		}
	default:
		less = byTitle
	}

	sort.SliceStable(movies, func(i, j int) bool {
		return less(movies[i], movies[j])
	})
}
