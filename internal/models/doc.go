// Package models defines the catalog entities served by the site.
//
// Catalog records are created once at startup and only touched afterwards by the enrichment passes:
//   - [Album] : a record in the music collection, with a primary genre and optional secondary genres
//   - [Movie] : a rated film, bucketed into a [Category]
//   - [EntertainmentItem] : static decorative media
//
// Visitor submissions are validated against their input types and never mutated once stored:
//   - [ContactSubmission] built from [ContactInput]
//   - [Recommendation] built from [RecommendationInput]
//
// Every record carries a generated identifier and a creation timestamp assigned at insertion.
package models
