package repositories

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// Cover kinds.
const (
	KindAlbum = "album"
	KindMovie = "movie"
)

// isConstraintViolation reports whether err is a primary key or unique constraint failure.
func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
