// Package formatter exports the catalog to CSV, Markdown and JSON.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
)

// Format names an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// ParseFormat accepts csv, markdown (or md) and json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown format %q", s)
	}
}

// AlbumsToCSV writes albums with columns: ID, Title, Artist, Genre, Genres, Favorite, Image URL
func AlbumsToCSV(albums []models.Album) ([]byte, error) {
	records := make([][]string, 0, len(albums))
	for _, a := range albums {
		records = append(records, []string{
			a.ID,
			a.Title,
			a.Artist,
			a.Genre,
			strings.Join(a.Genres, ";"),
			strconv.FormatBool(a.IsFavorite),
			a.ImageURL,
		})
	}
	return writeCSV([]string{"ID", "Title", "Artist", "Genre", "Genres", "Favorite", "Image URL"}, records)
}

// MoviesToCSV writes movies with columns: ID, Title, Year, Rating, Category, Watched, Letterboxd URL, Image URL
func MoviesToCSV(movies []models.Movie) ([]byte, error) {
	records := make([][]string, 0, len(movies))
	for _, m := range movies {
		records = append(records, []string{
			m.ID,
			m.Title,
			optionalInt(m.Year),
			optionalRating(m.Rating),
			string(m.Category),
			watched(m),
			m.LetterboxdURL,
			m.ImageURL,
		})
	}
	return writeCSV([]string{"ID", "Title", "Year", "Rating", "Category", "Watched", "Letterboxd URL", "Image URL"}, records)
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV record: %w", err)
	}

	return buf.Bytes(), nil
}

// AlbumsToMarkdown renders albums as a numbered list grouped under a heading.
func AlbumsToMarkdown(title string, albums []models.Album) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Albums**: %d\n\n", len(albums))

	for i, a := range albums {
		fav := ""
		if a.IsFavorite {
			fav = " ★"
		}
		fmt.Fprintf(&buf, "%d. %s - %s (%s)%s\n", i+1, a.Artist, a.Title, a.Genre, fav)
	}

	return buf.Bytes()
}

// MoviesToMarkdown renders movies as a numbered list.
func MoviesToMarkdown(title string, movies []models.Movie) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Movies**: %d\n\n", len(movies))

	for i, m := range movies {
		line := m.Title
		if m.Year > 0 {
			line += fmt.Sprintf(" (%d)", m.Year)
		}
		if m.Rating > 0 {
			line += " " + Stars(m.Rating)
		}
		if d := watched(m); d != "" {
			line += " watched " + d
		}
		fmt.Fprintf(&buf, "%d. %s\n", i+1, line)
	}

	return buf.Bytes()
}

// ToJSON encodes v as indented JSON.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Albums renders albums in format.
func Albums(format Format, albums []models.Album) ([]byte, error) {
	switch format {
	case CSV:
		return AlbumsToCSV(albums)
	case Markdown:
		return AlbumsToMarkdown("Albums", albums), nil
	case JSON:
		return ToJSON(albums)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// Movies renders movies in format under heading.
func Movies(format Format, heading string, movies []models.Movie) ([]byte, error) {
	switch format {
	case CSV:
		return MoviesToCSV(movies)
	case Markdown:
		return MoviesToMarkdown(heading, movies), nil
	case JSON:
		return ToJSON(movies)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Stars renders a 0-5 rating in half steps, e.g. 3.5 as "★★★½".
func Stars(rating float64) string {
	full := int(rating)
	s := strings.Repeat("★", full)
	if rating-float64(full) >= 0.5 {
		s += "½"
	}
	return s
}

func optionalInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func optionalRating(r float64) string {
	if r == 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func watched(m models.Movie) string {
	if m.WatchedDate == nil {
		return ""
	}
	return m.WatchedDate.Format("2006-01-02")
}
