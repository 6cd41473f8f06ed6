package covers

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// URLPrefix is the path the server mounts the covers directory on.
const URLPrefix = "/covers/"

var manual = map[string]string{
	"jackboys-by-travis-scott":                     "jackboys.jpg",
	"how-do-you-sleep-at-night-by-teezo-touchdown": "how-do-you-sleep-at-night.jpg",
	"charm-by-clairo":                              "charm.png",
	"funk-wav-bounces-vol-1-by-calvin-harris":      "funk-wav-bounces.png",
	"good-for-you-by-amine":                        "good-for-you.png",
	"lets-start-here-by-lil-yachty":                "lets-start-here.png",
	"magna-carta-holy-grail-by-jay-z":              "magna-carta-holy-grail.png",
	"kaytramine-by-kaytramine":                     "kaytramine.png",
}

var preserved = map[string]struct{}{
	"JACKBOYS":                   {},
	"How Do You Sleep At Night?": {},
	"Kaytramine":                 {},
}

var (
	nonSlug = regexp.MustCompile(`[^a-z0-9_\s-]`)
	spaces  = regexp.MustCompile(`\s+`)
	hyphens = regexp.MustCompile(`-+`)
)

// Slug folds s into the form used for mapping keys.
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	folded = nonSlug.ReplaceAllString(folded, "")
	folded = spaces.ReplaceAllString(folded, "-")
	folded = hyphens.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// Key returns the mapping key for an album.
func Key(title, artist string) string {
	return Slug(title) + "-by-" + Slug(artist)
}

// ManualURL returns the local cover path for an album with a manual mapping.
func ManualURL(title, artist string) (string, bool) {
	file, ok := manual[Key(title, artist)]
	if !ok {
		return "", false
	}
	return URLPrefix + file, true
}

// Files lists every mapped cover file name, sorted.
func Files() []string {
	files := make([]string, 0, len(manual))
	for _, f := range manual {
		files = append(files, f)
	}
	slices.Sort(files)
	return files
}

// MissingFiles returns the mapped cover files that are not regular files in dir.
func MissingFiles(dir string) []string {
	var missing []string
	for _, f := range Files() {
		info, err := os.Stat(filepath.Join(dir, f))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, f)
		}
	}
	return missing
}

// Preserved reports whether an album title must keep its local spelling.
func Preserved(title string) bool {
	_, ok := preserved[title]
	return ok
}

// IsCollaboration reports whether artist credits more than one act.
func IsCollaboration(artist string) bool {
	return strings.Contains(artist, "&") || strings.Contains(strings.ToLower(artist), "feat")
}
