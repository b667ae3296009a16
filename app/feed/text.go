package feed

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultDuration      = "0:00"
	maxSlugLength        = 50
	maxDescriptionLength = 300
)

// whitespace mirrors the set of characters browsers treat as \s,
// which is wider than the ASCII class RE2 uses.
const whitespace = `\s\v\p{Z}\x{FEFF}`

var (
	htmlTagPattern       = regexp.MustCompile(`<[^>]*>`)
	slugInvalidPattern   = regexp.MustCompile(`[^a-z0-9` + whitespace + `-]`)
	slugSpacePattern     = regexp.MustCompile(`[` + whitespace + `]+`)
	slugHyphenPattern    = regexp.MustCompile(`-+`)
	episodeNumberPattern = regexp.MustCompile(`^Ep\.(\d+)[` + whitespace + `]*-`)
	leadingIntPattern    = regexp.MustCompile(`^[` + whitespace + `]*([+-]?\d+)`)
)

// Decoded in this order, after tags are removed.
var htmlEntities = []struct {
	entity string
	value  string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
}

// StripHTML removes markup and decodes a fixed set of entities.
func StripHTML(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	for _, e := range htmlEntities {
		s = strings.ReplaceAll(s, e.entity, e.value)
	}
	return strings.TrimSpace(s)
}

// ParseDuration normalizes an itunes:duration value. Values that already
// contain a colon are returned unchanged; anything else is read as seconds.
func ParseDuration(raw string) string {
	if strings.Contains(raw, ":") {
		return raw
	}

	match := leadingIntPattern.FindStringSubmatch(raw)
	if match == nil {
		return DefaultDuration
	}

	seconds, err := strconv.Atoi(match[1])
	if err != nil || seconds < 0 {
		return DefaultDuration
	}

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// GenerateSlug builds the URL identifier for an episode. index is the
// item's position in the feed and only matters when the title yields
// nothing usable.
func GenerateSlug(title string, index int) string {
	slug := strings.ToLower(title)
	slug = slugInvalidPattern.ReplaceAllString(slug, "")
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugHyphenPattern.ReplaceAllString(slug, "-")

	// Only ASCII survives the filters above, so byte slicing is safe.
	if len(slug) > maxSlugLength {
		slug = slug[:maxSlugLength]
	}

	if slug == "" {
		return fmt.Sprintf("episode-%d", index+1)
	}
	return slug
}

// ParseEpisodeNumber reads the "Ep.<n> -" title prefix.
func ParseEpisodeNumber(title string) (int, bool) {
	match := episodeNumberPattern.FindStringSubmatch(title)
	if match == nil {
		return 0, false
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Truncate cuts s to limit runes and appends "..." when anything was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit]) + "..."
}
