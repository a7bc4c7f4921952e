package social

import (
	"regexp"
	"strings"
)

// Permalink shapes the platform uses for posts, most specific first
var postIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`facebook\.com/.*?/posts/(\d+)`),
	regexp.MustCompile(`facebook\.com/.*?/photos/.*?(\d+)`),
	regexp.MustCompile(`facebook\.com/permalink\.php\?story_fbid=(\d+)`),
}

var handlePattern = regexp.MustCompile(`facebook\.com/([^/?#]+)`)

// PostIDFromURL extracts a post id from a platform permalink. A bare
// numeric "pageid_postid" reference passes through unchanged.
func PostIDFromURL(rawInput string) (string, bool) {
	if isBarePostID(rawInput) {
		return rawInput, true
	}
	for _, pattern := range postIDPatterns {
		if m := pattern.FindStringSubmatch(rawInput); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// HandleFromURL extracts the page or profile handle from a platform URL
func HandleFromURL(rawURL string) (string, bool) {
	m := handlePattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	handle := m[1]
	switch handle {
	case "permalink.php", "photo.php", "watch", "groups", "events":
		return "", false
	}
	return handle, true
}

func isBarePostID(s string) bool {
	left, right, ok := strings.Cut(s, "_")
	if !ok || left == "" || right == "" {
		return false
	}
	return allDigits(left) && allDigits(right)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
