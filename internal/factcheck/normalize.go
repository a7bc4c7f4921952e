package factcheck

import (
	"fmt"
	"strings"

	"github.com/pdelacruz/newscred/internal/model"
)

// ratingEntry maps a family of textual rating phrases to one normalized rating
type ratingEntry struct {
	keys   []string
	rating model.NormalizedRating
}

// ratingTable is evaluated in order: exact matches over every key first,
// then substring matches walking the table top to bottom. Table order is
// load-bearing for the substring pass and must stay: true family, mostly
// true, mixed, mostly false, false family, unverifiable, satire, opinion.
var ratingTable = []ratingEntry{
	{
		keys:   []string{"true", "correct", "accurate", "verified"},
		rating: model.NormalizedRating{Score: 1.0, Label: "True", Confidence: 0.9},
	},
	{
		keys:   []string{"mostly true", "mostly correct", "largely accurate"},
		rating: model.NormalizedRating{Score: 0.8, Label: "Mostly True", Confidence: 0.8},
	},
	{
		keys:   []string{"mixture", "half true", "partially true", "some truth"},
		rating: model.NormalizedRating{Score: 0.5, Label: "Mixed", Confidence: 0.7},
	},
	{
		keys:   []string{"mostly false", "mostly incorrect", "largely inaccurate"},
		rating: model.NormalizedRating{Score: 0.2, Label: "Mostly False", Confidence: 0.8},
	},
	{
		keys:   []string{"false", "incorrect", "inaccurate", "debunked", "fake", "hoax"},
		rating: model.NormalizedRating{Score: 0.0, Label: "False", Confidence: 0.9},
	},
	{
		keys:   []string{"unverifiable", "unproven", "no evidence"},
		rating: model.NormalizedRating{Score: 0.3, Label: "Unverifiable", Confidence: 0.6},
	},
	{
		keys:   []string{"satire"},
		rating: model.NormalizedRating{Score: 0.1, Label: "Satire", Confidence: 0.8},
	},
	{
		keys:   []string{"opinion", "commentary"},
		rating: model.NormalizedRating{Score: 0.4, Label: "Opinion", Confidence: 0.7},
	},
}

// NormalizeRating maps a publisher's free-text verdict to a calibrated
// (score, label, confidence) triple. Unknown phrases get a neutral score at
// low confidence; empty input gets zero confidence.
func NormalizeRating(textualRating string) model.NormalizedRating {
	if strings.TrimSpace(textualRating) == "" {
		return model.NormalizedRating{Score: 0.5, Label: "Unknown", Confidence: 0.0}
	}

	lower := strings.ToLower(strings.TrimSpace(textualRating))

	// Exact match over every key
	for _, entry := range ratingTable {
		for _, key := range entry.keys {
			if lower == key {
				return entry.rating
			}
		}
	}

	// Substring match, table order decides
	for _, entry := range ratingTable {
		for _, key := range entry.keys {
			if strings.Contains(lower, key) || strings.Contains(key, lower) {
				return entry.rating
			}
		}
	}

	return model.NormalizedRating{
		Score:      0.5,
		Label:      fmt.Sprintf("Unknown (%s)", textualRating),
		Confidence: 0.3,
	}
}
