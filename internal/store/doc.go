// package store is the in-memory catalog shared by the HTTP handlers and the enrichment passes.
//
// A [Store] is constructed once at startup and passed to everything that needs it. Records keep their
// insertion order, every read returns copies, and only cover art and the album title and artist
// are changed after insert.
package store
