package services

import (
	"slices"
	"strings"

	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

// UnknownArtist accepts any artist on a title match.
const UnknownArtist = "Unknown Artist"

type overrideKey struct {
	title  string
	artist string
}

// overrides narrow the accepted candidates for albums whose searches return sibling releases.
var overrides = map[overrideKey]func(SpotifyAlbum) bool{
	{"What's Going On", "Marvin Gaye"}: func(a SpotifyAlbum) bool {
		name := strings.ToLower(a.Name)
		return !containsAny(name, "mix", "deluxe", "remaster")
	},
	{"Tha Carter V", "Lil Wayne"}: func(a SpotifyAlbum) bool {
		name := strings.ToLower(a.Name)
		return strings.Contains(name, "carter v") && !strings.Contains(name, "carter vi")
	},
	{"The Blueprint", "Jay-Z"}: func(a SpotifyAlbum) bool {
		name := strings.ToLower(a.Name)
		if name == "the blueprint" {
			return true
		}
		return strings.Contains(name, "blueprint") && !containsAny(name, "2", "3")
	},
	{"D-Day: A Gangsta Grillz Mixtape", "Dreamville"}: func(a SpotifyAlbum) bool {
		name := strings.ToLower(a.Name)
		if !strings.Contains(name, "d-day") || !containsAny(name, "gangsta", "grillz") {
			return false
		}
		return slices.ContainsFunc(a.Artists, func(ar SpotifyArtist) bool {
			return containsAny(strings.ToLower(ar.Name), "dreamville", "j. cole")
		})
	},
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// overlaps reports whether either normalized string contains the other.
func overlaps(a, b string) bool {
	a, b = shared.NormalizeTitle(a), shared.NormalizeTitle(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchAlbum decides whether candidate is an acceptable result for the local title and artist.
//
// Titles must overlap in either direction, and so must the artist with at least one credited artist
// unless the local artist is [UnknownArtist]. Albums in the override table must also pass their rule.
func MatchAlbum(title, artist string, candidate SpotifyAlbum) bool {
	if !overlaps(candidate.Name, title) {
		return false
	}

	if artist != UnknownArtist {
		credited := slices.ContainsFunc(candidate.Artists, func(a SpotifyArtist) bool {
			return overlaps(a.Name, artist)
		})
		if !credited {
			return false
		}
	}

	if rule, ok := overrides[overrideKey{title, artist}]; ok {
		return rule(candidate)
	}
	return true
}

// SearchStrategies returns the catalog queries to try, strictest first.
func SearchStrategies(title, artist string) []string {
	first := artist
	if i := strings.IndexByte(artist, ' '); i >= 0 {
		first = artist[:i]
	}

	return []string{
		`album:"` + title + `" artist:"` + artist + `"`,
		title + " " + artist,
		`"` + title + `"`,
		title + " " + first,
	}
}
