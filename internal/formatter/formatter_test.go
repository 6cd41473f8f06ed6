package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
)

func sampleAlbums() []models.Album {
	return []models.Album{
		{ID: "a1", Title: "Blonde", Artist: "Frank Ocean", Genre: "r&b", Genres: []string{"r&b", "soul"}, IsFavorite: true, ImageURL: "https://img.example/blonde.jpg"},
		{ID: "a2", Title: "Illmatic, Remastered", Artist: "Nas", Genre: "hip-hop"},
	}
}

func sampleMovies() []models.Movie {
	watched := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	return []models.Movie{
		{ID: "m1", Title: "Heat", Year: 1995, Rating: 4.5, Category: models.CategoryOther, WatchedDate: &watched},
		{ID: "m2", Title: "Unknown", Category: models.CategoryRecentlyWatched},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"csv", CSV, false},
		{"CSV", CSV, false},
		{"md", Markdown, false},
		{"markdown", Markdown, false},
		{" json ", JSON, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestExporters(t *testing.T) {
	t.Run("AlbumsToCSV", func(t *testing.T) {
		data, err := AlbumsToCSV(sampleAlbums())
		if err != nil {
			t.Fatalf("AlbumsToCSV failed: %v", err)
		}
		output := string(data)

		if !strings.HasPrefix(output, "ID,Title,Artist,Genre,Genres,Favorite,Image URL\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "a1,Blonde,Frank Ocean,r&b,r&b;soul,true,https://img.example/blonde.jpg") {
			t.Errorf("CSV missing first album, got: %s", output)
		}
		if !strings.Contains(output, `"Illmatic, Remastered"`) {
			t.Errorf("expected comma in title to be quoted, got: %s", output)
		}
	})

	t.Run("MoviesToCSV", func(t *testing.T) {
		data, err := MoviesToCSV(sampleMovies())
		if err != nil {
			t.Fatalf("MoviesToCSV failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d", len(lines))
		}
		if lines[1] != "m1,Heat,1995,4.5,other,2025-07-04,," {
			t.Errorf("unexpected row %q", lines[1])
		}
		if lines[2] != "m2,Unknown,,,recently-watched,,," {
			t.Errorf("unexpected row %q", lines[2])
		}
	})

	t.Run("AlbumsToMarkdown", func(t *testing.T) {
		output := string(AlbumsToMarkdown("Favorites", sampleAlbums()))

		if !strings.HasPrefix(output, "# Favorites\n\n") {
			t.Errorf("missing heading, got: %s", output)
		}
		if !strings.Contains(output, "**Albums**: 2") {
			t.Errorf("missing count, got: %s", output)
		}
		if !strings.Contains(output, "1. Frank Ocean - Blonde (r&b) ★\n") {
			t.Errorf("missing favorite line, got: %s", output)
		}
		if !strings.Contains(output, "2. Nas - Illmatic, Remastered (hip-hop)\n") {
			t.Errorf("missing second line, got: %s", output)
		}
	})

	t.Run("MoviesToMarkdown", func(t *testing.T) {
		output := string(MoviesToMarkdown("Movies", sampleMovies()))

		if !strings.Contains(output, "1. Heat (1995) ★★★★½ watched 2025-07-04\n") {
			t.Errorf("missing first line, got: %s", output)
		}
		if !strings.Contains(output, "2. Unknown\n") {
			t.Errorf("missing bare line, got: %s", output)
		}
	})

	t.Run("ToJSON", func(t *testing.T) {
		data, err := ToJSON(sampleAlbums())
		if err != nil {
			t.Fatalf("ToJSON failed: %v", err)
		}
		var back []models.Album
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(back) != 2 || !strings.Contains(string(data), `"isFavorite": true`) {
			t.Errorf("unexpected JSON: %s", data)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		data, err := AlbumsToCSV(nil)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Errorf("expected header only, got %q", data)
		}
	})
}

func TestDispatch(t *testing.T) {
	for _, f := range []Format{CSV, Markdown, JSON} {
		if _, err := Albums(f, sampleAlbums()); err != nil {
			t.Errorf("Albums(%s): %v", f, err)
		}
		if _, err := Movies(f, "Movies", sampleMovies()); err != nil {
			t.Errorf("Movies(%s): %v", f, err)
		}
	}
	if _, err := Albums("xml", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestStars(t *testing.T) {
	tests := map[float64]string{
		5:   "★★★★★",
		3.5: "★★★½",
		0.5: "½",
		1:   "★",
	}
	for rating, want := range tests {
		if got := Stars(rating); got != want {
			t.Errorf("Stars(%v) = %q, want %q", rating, got, want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "albums.csv")
	if err := WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "x" {
		t.Errorf("unexpected file content %q, %v", data, err)
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.csv"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}
