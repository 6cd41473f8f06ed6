// package models defines the data model for the catalog site
package models

import (
	"slices"
	"time"
)

// Category is one of the fixed movie buckets.
type Category string

const (
	CategoryFavorites        Category = "favorites"
	CategoryLeastFavorite    Category = "least-favorite"
	CategoryRecentlyWatched  Category = "recently-watched"
	CategoryRecentlyReleased Category = "recently-released"
	CategoryOther            Category = "other"
)

// Categories lists every bucket in display order.
var Categories = []Category{
	CategoryFavorites,
	CategoryLeastFavorite,
	CategoryRecentlyWatched,
	CategoryRecentlyReleased,
	CategoryOther,
}

// ParseCategory reports whether s names a known bucket.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, slices.Contains(Categories, c)
}

// FavoritesGenre is the pseudo-genre that filters albums on [Album.IsFavorite].
const FavoritesGenre = "favorites"

// Album is a record in the music collection.
type Album struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Genre      string    `json:"genre"`
	Genres     []string  `json:"genres,omitempty"`
	IsFavorite bool      `json:"isFavorite"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// HasGenre reports whether genre is the album's primary genre or one of its secondary genres.
func (a Album) HasGenre(genre string) bool {
	return a.Genre == genre || slices.Contains(a.Genres, genre)
}

// Clone returns a copy that shares no slices with a.
func (a Album) Clone() Album {
	a.Genres = slices.Clone(a.Genres)
	return a
}

// Movie is a rated film. Year and Rating are zero when unknown.
type Movie struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Year          int        `json:"year,omitempty"`
	Rating        float64    `json:"rating,omitempty"`
	Category      Category   `json:"category"`
	LetterboxdURL string     `json:"letterboxdUrl,omitempty"`
	Review        string     `json:"review,omitempty"`
	WatchedDate   *time.Time `json:"watchedDate,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with m.
func (m Movie) Clone() Movie {
	if m.WatchedDate != nil {
		d := *m.WatchedDate
		m.WatchedDate = &d
	}
	return m
}

// Watched returns the watched date or the zero time.
func (m Movie) Watched() time.Time {
	if m.WatchedDate == nil {
		return time.Time{}
	}
	return *m.WatchedDate
}

// MediaType distinguishes still images from animated ones.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaGIF   MediaType = "gif"
)

// EntertainmentItem is a piece of static decorative media.
type EntertainmentItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Category  string    `json:"category"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType MediaType `json:"mediaType"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactInput is the body accepted by the contact form.
type ContactInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email,max=320"`
	Message string `json:"message" validate:"max=5000"`
}

// ContactSubmission is a stored contact form message.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewContactSubmission builds a submission from validated input.
func NewContactSubmission(id string, in ContactInput, now time.Time) ContactSubmission {
	return ContactSubmission{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		CreatedAt: now,
	}
}

// RecommendationInput is the body accepted by the recommendation form.
type RecommendationInput struct {
	Title          string `json:"title" validate:"required,max=200"`
	Type           string `json:"type" validate:"required,max=50"`
	Description    string `json:"description" validate:"max=2000"`
	SubmitterName  string `json:"submitterName" validate:"max=200"`
	SubmitterEmail string `json:"submitterEmail" validate:"omitempty,email,max=320"`
}

// Recommendation is a stored visitor recommendation.
type Recommendation struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Type           string    `json:"type"`
	Description    string    `json:"description,omitempty"`
	SubmitterName  string    `json:"submitterName,omitempty"`
	SubmitterEmail string    `json:"submitterEmail,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewRecommendation builds a recommendation from validated input.
func NewRecommendation(id string, in RecommendationInput, now time.Time) Recommendation {
	return Recommendation{
		ID:             id,
		Title:          in.Title,
		Type:           in.Type,
		Description:    in.Description,
		SubmitterName:  in.SubmitterName,
		SubmitterEmail: in.SubmitterEmail,
		CreatedAt:      now,
	}
}
