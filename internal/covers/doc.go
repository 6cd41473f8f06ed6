// package covers holds the static cover-art overrides applied before any external lookup.
//
// Keys are "title-by-artist" slugs: lower case, accents folded, punctuation dropped and
// whitespace turned into hyphens, so "Aminé" and "Amine" share an entry.
package covers
