// Package tasks runs the background cover-art enrichment passes.
//
// # Passes
//
// [AlbumEnricher] fills album covers from the music catalog and [MovieEnricher] fills movie posters
// from the film metadata API. Each pass:
//
//  1. Applies manual cover mappings (albums only) without any external call
//  2. Resolves remaining entries from the optional [CoverCacher]
//  3. Searches the external service in small concurrent batches, waiting on a rate limiter before
//     each call and pausing between batches
//
// A failed or empty lookup leaves the entry without an image; it never stops the batch. The summary
// is returned as a [Result] and logged.
//
// # Progress Reporting
//
// Passes accept an optional channel of [ProgressUpdate]. Updates use select with default so a slow
// or absent reader never blocks a pass.
//
// # Cover Caching
//
// The optional [CoverCacher] interface persists resolved URLs (repositories.CoverCacheAdapter) so a
// restart does not repeat lookups. Cache write failures are logged and otherwise ignored.
package tasks
