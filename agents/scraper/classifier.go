package scraper

import (
	"regexp"
	"strings"
)

// minEpisodeSeconds is the shortest duration treated as a full episode.
const minEpisodeSeconds = 1200

// skipPatterns match titles of non-episode uploads. Word boundaries keep
// substrings inside other words from triggering ("Clippy" survives).
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#shorts`),
	regexp.MustCompile(`\bclip\b`),
	regexp.MustCompile(`\bhighlight\b`),
	regexp.MustCompile(`\btrailer\b`),
	regexp.MustCompile(`\bteaser\b`),
	regexp.MustCompile(`\bpreview\b`),
	regexp.MustCompile(`\breaction\b`),
}

// IsEpisode reports whether a video looks like a genuine long-form
// episode rather than a clip, short, or trailer. A duration of 0 means
// unknown and does not reject on its own.
func IsEpisode(title string, durationSeconds int) bool {
	if durationSeconds > 0 && durationSeconds < minEpisodeSeconds {
		return false
	}

	titleLower := strings.ToLower(title)
	for _, pattern := range skipPatterns {
		if pattern.MatchString(titleLower) {
			return false
		}
	}
	return true
}
