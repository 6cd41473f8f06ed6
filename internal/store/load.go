package store

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/ratings"
)

// MovieSources names the exported CSV files. An empty path is skipped.
type MovieSources struct {
	RatingsPath string
	DiaryPath   string
}

// LoadResult summarizes a movie load.
type LoadResult struct {
	Rated   int
	Diary   int
	Created int
}

// LoadMovies reads the ratings export into s and then links the diary export.
//
// A missing or malformed file is logged and contributes nothing; the rest of the load continues.
func LoadMovies(s *Store, src MovieSources, opts ratings.Options, logger *log.Logger) LoadResult {
	var res LoadResult

	if src.RatingsPath != "" {
		movies, err := readRatings(src.RatingsPath, opts)
		if err != nil {
			logger.Error("failed to load ratings", "path", src.RatingsPath, "error", err)
		}
		for _, m := range movies {
			s.CreateMovie(m)
		}
		res.Rated = len(movies)
	}

	if src.DiaryPath != "" {
		entries, err := readDiary(src.DiaryPath, opts)
		if err != nil {
			logger.Error("failed to load diary", "path", src.DiaryPath, "error", err)
		}
		res.Diary = len(entries)
		res.Created = s.LinkDiary(entries)
	}

	logger.Info("loaded movies", "rated", res.Rated, "diary", res.Diary, "created", res.Created)
	return res
}

func readRatings(path string, opts ratings.Options) ([]models.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ratings: %w", err)
	}
	defer f.Close()

	return ratings.LoadRatings(f, opts)
}

func readDiary(path string, opts ratings.Options) ([]ratings.DiaryEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open diary: %w", err)
	}
	defer f.Close()

	return ratings.LoadDiary(f, opts)
}
