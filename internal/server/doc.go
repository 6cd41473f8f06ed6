// Package server exposes the catalog over JSON.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation registers [http.ServeMux] method patterns, so wrong methods get a 405.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [APIHandler] claims /api/ and dispatches internally.
//
// # Endpoints
//
//	GET  /api/albums?genre=            all albums, or one genre ("favorites" selects favorites)
//	GET  /api/albums/{id}              one album, 404 when unknown
//	GET  /api/albums/genre/{genre}     albums of one genre
//	GET  /api/movies?category=         all movies, or one category in that category's order
//	GET  /api/movies/{id}              one movie, 404 when unknown
//	GET  /api/movies/recently-watched  diary view, newest first
//	GET  /api/movies/recently-released recent releases watched lately
//	GET  /api/entertainment?category=  decorative media
//	POST /api/contact                  contact form
//	GET  /api/contact                  stored contact messages
//	POST /api/recommendations          recommendation form
//	GET  /api/recommendations          stored recommendations
//	GET  /healthz                      liveness and record counts
//	GET  /covers/                      manually mapped cover images
//
// Reads answer 200 with a JSON array. Writes answer 200 with {"message", "id"} or 400 with {"message"}.
// A failing read answers 500 with a generic message.
package server
