package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

// CoverEntry is one cached cover image.
type CoverEntry struct {
	Kind      string    `json:"kind"`
	Key       string    `json:"key"`
	ImageURL  string    `json:"imageUrl"`
	Title     string    `json:"title,omitempty"`
	Artist    string    `json:"artist,omitempty"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the required fields.
func (e *CoverEntry) Validate() error {
	switch {
	case e.Kind != KindAlbum && e.Kind != KindMovie:
		return fmt.Errorf("%w: unknown cover kind %q", shared.ErrInvalidInput, e.Kind)
	case e.Key == "":
		return fmt.Errorf("%w: empty lookup key", shared.ErrInvalidInput)
	case e.ImageURL == "":
		return fmt.Errorf("%w: empty image url", shared.ErrInvalidInput)
	}
	return nil
}

// CoverRepository persists cover entries in the cover_cache table.
type CoverRepository struct {
	db *sql.DB
}

// NewCoverRepository creates a new CoverRepository with the given database connection
func NewCoverRepository(db *sql.DB) *CoverRepository {
	return &CoverRepository{db: db}
}

// Create inserts a new entry. A zero CreatedAt is set to now.
func (r *CoverRepository) Create(entry *CoverEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO cover_cache (kind, lookup_key, image_url, title, artist, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, entry.Kind, entry.Key, entry.ImageURL, entry.Title, entry.Artist, entry.Source, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert cover: %w", err)
	}
	return nil
}

// Get retrieves the entry for kind and key.
func (r *CoverRepository) Get(kind, key string) (*CoverEntry, error) {
	query := `
		SELECT kind, lookup_key, image_url, title, artist, source, created_at
		FROM cover_cache
		WHERE kind = ? AND lookup_key = ?
	`

	var e CoverEntry
	err := r.db.QueryRow(query, kind, key).Scan(&e.Kind, &e.Key, &e.ImageURL, &e.Title, &e.Artist, &e.Source, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s cover %s", shared.ErrNotFound, kind, key)
		}
		return nil, fmt.Errorf("failed to scan cover: %w", err)
	}
	return &e, nil
}

// List returns the entries of kind, or of every kind when kind is empty, newest first.
func (r *CoverRepository) List(kind string) ([]*CoverEntry, error) {
	query := `
		SELECT kind, lookup_key, image_url, title, artist, source, created_at
		FROM cover_cache
		WHERE ? = '' OR kind = ?
		ORDER BY created_at DESC, lookup_key
	`

	rows, err := r.db.Query(query, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query covers: %w", err)
	}
	defer rows.Close()

	var entries []*CoverEntry
	for rows.Next() {
		var e CoverEntry
		if err := rows.Scan(&e.Kind, &e.Key, &e.ImageURL, &e.Title, &e.Artist, &e.Source, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cover: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating covers: %w", err)
	}
	return entries, nil
}

// Count returns the number of entries per kind.
func (r *CoverRepository) Count() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT kind, COUNT(*) FROM cover_cache GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count covers: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{KindAlbum: 0, KindMovie: 0}
	for rows.Next() {
		var (
			kind string
			n    int
		)
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating counts: %w", err)
	}
	return counts, nil
}

// Clear deletes the entries of kind, or every entry when kind is empty, and returns how many were removed.
func (r *CoverRepository) Clear(kind string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM cover_cache WHERE ? = '' OR kind = ?`, kind, kind)
	if err != nil {
		return 0, fmt.Errorf("failed to clear covers: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
