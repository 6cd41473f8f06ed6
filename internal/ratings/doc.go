// Package ratings turns the exported ratings and diary CSV files into catalog movies.
//
// # Format
//
// Both files are a header row followed by comma separated rows. A double quote toggles quoted mode, in which
// commas are kept as part of the field. Escaped quotes are not supported. Columns are located by header name,
// so extra or reordered columns are tolerated.
//
// # Buckets
//
// [Categorize] assigns each rated film a bucket by fixed priority:
//
//  1. rating == 5 : favorites
//  2. rating <= 1.5 : least-favorite
//  3. release year within the recent window : recently-released
//  4. everything else : other
//
// The diary feeds the recently-watched bucket separately through [LoadDiary]; [SortByCategory] applies each
// bucket's display order.
package ratings
