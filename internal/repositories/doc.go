// Package repositories implements SQLite persistence for resolved cover art.
//
// The in-memory store is rebuilt on every start, so external lookups would repeat on each boot.
// [CoverRepository] keeps every resolved image URL keyed by kind and lookup key, and
// [CoverCacheAdapter] exposes it to the enrichment passes, which consult it before calling out.
//
// Key Implementations:
//   - [CoverRepository] : cover rows with per-kind counts and bulk clearing
//   - [CoverCacheAdapter] : enrichment-facing cache that ignores duplicate inserts
package repositories
