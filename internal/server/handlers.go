package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/hlieber45/harrisonlieber-site/internal/models"
	"github.com/hlieber45/harrisonlieber-site/internal/store"
	"github.com/hlieber45/harrisonlieber-site/internal/validation"
)

// maxBodyBytes bounds form submissions.
const maxBodyBytes = 64 << 10

// Catalog is the read and write surface the API needs. *store.Store implements it.
type Catalog interface {
	Albums() []models.Album
	Album(id string) (models.Album, bool)
	AlbumsByGenre(genre string) []models.Album
	Movies() []models.Movie
	Movie(id string) (models.Movie, bool)
	MoviesByCategory(category models.Category) []models.Movie
	RecentlyWatched() []models.Movie
	RecentlyReleased() []models.Movie
	Entertainment() []models.EntertainmentItem
	EntertainmentByCategory(category string) []models.EntertainmentItem
	CreateContactSubmission(in models.ContactInput) models.ContactSubmission
	ContactSubmissions() []models.ContactSubmission
	CreateRecommendation(in models.RecommendationInput) models.Recommendation
	Recommendations() []models.Recommendation
	Stats() store.Stats
}

// APIHandler serves every /api/ route.
type APIHandler struct {
	catalog Catalog
	logger  *log.Logger
	mux     *http.ServeMux
}

// NewAPIHandler registers the API routes on an internal mux.
func NewAPIHandler(catalog Catalog, logger *log.Logger) *APIHandler {
	h := &APIHandler{catalog: catalog, logger: logger, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /api/albums", h.listAlbums)
	h.mux.HandleFunc("GET /api/albums/{id}", h.getAlbum)
	h.mux.HandleFunc("GET /api/albums/genre/{genre}", h.listAlbumsByGenre)
	h.mux.HandleFunc("GET /api/movies", h.listMovies)
	h.mux.HandleFunc("GET /api/movies/{id}", h.getMovie)
	h.mux.HandleFunc("GET /api/movies/recently-watched", h.recentlyWatched)
	h.mux.HandleFunc("GET /api/movies/recently-released", h.recentlyReleased)
	h.mux.HandleFunc("GET /api/entertainment", h.listEntertainment)
	h.mux.HandleFunc("POST /api/contact", h.createContact)
	h.mux.HandleFunc("GET /api/contact", h.listContacts)
	h.mux.HandleFunc("POST /api/recommendations", h.createRecommendation)
	h.mux.HandleFunc("GET /api/recommendations", h.listRecommendations)

	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *APIHandler) Routes() []string {
	return []string{"/api/"}
}

// ServeHTTP dispatches to the matching API route.
func (h *APIHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// fetch writes the result of read, or a 500 with failure when read panics.
func fetch[T any](h *APIHandler, w http.ResponseWriter, failure string, read func() []T) {
	var (
		out []T
		err error
	)
	func() {
		defer func() {
			if v := recover(); v != nil {
				err = fmt.Errorf("%v", v)
			}
		}()
		out = read()
	}()

	if err != nil {
		h.logger.Error(failure, "error", err)
		respondError(w, http.StatusInternalServerError, failure)
		return
	}
	respondJSON(w, http.StatusOK, orEmpty(out))
}

func (h *APIHandler) listAlbums(w http.ResponseWriter, r *http.Request) {
	genre := strings.TrimSpace(r.URL.Query().Get("genre"))
	fetch(h, w, "Failed to fetch albums", func() []models.Album {
		if genre != "" {
			return h.catalog.AlbumsByGenre(genre)
		}
		return h.catalog.Albums()
	})
}

func (h *APIHandler) getAlbum(w http.ResponseWriter, r *http.Request) {
	a, ok := h.catalog.Album(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Album not found")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *APIHandler) getMovie(w http.ResponseWriter, r *http.Request) {
	m, ok := h.catalog.Movie(r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Movie not found")
		return
	}
	respondJSON(w, http.StatusOK, m)
}

func (h *APIHandler) listAlbumsByGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	fetch(h, w, "Failed to fetch albums by genre", func() []models.Album {
		return h.catalog.AlbumsByGenre(genre)
	})
}

func (h *APIHandler) listMovies(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	fetch(h, w, "Failed to fetch movies", func() []models.Movie {
		if category == "" {
			return h.catalog.Movies()
		}
		c, ok := models.ParseCategory(category)
		if !ok {
			return nil
		}
		return h.catalog.MoviesByCategory(c)
	})
}

func (h *APIHandler) recentlyWatched(w http.ResponseWriter, _ *http.Request) {
	fetch(h, w, "Failed to fetch recently watched movies", h.catalog.RecentlyWatched)
}

func (h *APIHandler) recentlyReleased(w http.ResponseWriter, _ *http.Request) {
	fetch(h, w, "Failed to fetch recently released movies", h.catalog.RecentlyReleased)
}

func (h *APIHandler) listEntertainment(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	fetch(h, w, "Failed to fetch entertainment items", func() []models.EntertainmentItem {
		if category != "" {
			return h.catalog.EntertainmentByCategory(category)
		}
		return h.catalog.Entertainment()
	})
}

func (h *APIHandler) listContacts(w http.ResponseWriter, _ *http.Request) {
	fetch(h, w, "Failed to fetch contact submissions", h.catalog.ContactSubmissions)
}

func (h *APIHandler) listRecommendations(w http.ResponseWriter, _ *http.Request) {
	fetch(h, w, "Failed to fetch recommendations", h.catalog.Recommendations)
}

func (h *APIHandler) createContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		h.logger.Debug("rejected contact submission", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid contact form data")
		return
	}

	submission := h.catalog.CreateContactSubmission(in)
	respondJSON(w, http.StatusOK, messageResponse{Message: "Message sent successfully!", ID: submission.ID})
}

func (h *APIHandler) createRecommendation(w http.ResponseWriter, r *http.Request) {
	var in models.RecommendationInput
	if err := decodeAndValidate(w, r, &in); err != nil {
		h.logger.Debug("rejected recommendation", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid recommendation data")
		return
	}

	rec := h.catalog.CreateRecommendation(in)
	respondJSON(w, http.StatusOK, messageResponse{Message: "Recommendation submitted successfully!", ID: rec.ID})
}

var errEmptyBody = errors.New("empty request body")

// decodeAndValidate reads a JSON body into dst and checks its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		return verr
	}
	return nil
}

// Health reports liveness and catalog counts.
func Health(catalog Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, struct {
			Status string      `json:"status"`
			Stats  store.Stats `json:"stats"`
		}{Status: "ok", Stats: catalog.Stats()})
	})
}

// Covers serves the manually mapped cover images from dir.
func Covers(dir string) http.Handler {
	return http.StripPrefix("/covers/", http.FileServer(http.Dir(dir)))
}
