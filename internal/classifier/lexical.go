package classifier

import (
	"context"
	"strings"
	"unicode"
)

// Sensational markers that correlate with fabricated content. Each hit
// nudges the lexical score toward "fake".
var sensationalMarkers = []string{
	"shocking", "you won't believe", "doctors hate", "miracle cure",
	"they don't want you to know", "wake up", "share before it's deleted",
	"100% proven", "secret revealed", "mainstream media won't",
	"exposed!", "urgent!!", "breaking!!!",
}

// LexicalClassifier is a self-contained heuristic classifier. It exists so
// the pipeline works without API credentials; its confidences are
// deliberately modest.
type LexicalClassifier struct{}

// NewLexicalClassifier creates the heuristic classifier
func NewLexicalClassifier() *LexicalClassifier {
	return &LexicalClassifier{}
}

// Name returns the provider name
func (c *LexicalClassifier) Name() string {
	return "lexical"
}

// Predict scores text by counting stylistic markers of fabricated content
func (c *LexicalClassifier) Predict(ctx context.Context, text string) (*Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lower := strings.ToLower(text)

	hits := 0
	for _, marker := range sensationalMarkers {
		if strings.Contains(lower, marker) {
			hits++
		}
	}

	words := strings.Fields(text)
	caps := 0
	for _, w := range words {
		if len(w) >= 4 && isAllUpper(w) {
			caps++
		}
	}
	if len(words) > 0 && float64(caps)/float64(len(words)) > 0.2 {
		hits++
	}

	if strings.Count(text, "!!!") > 0 || strings.Count(text, "!") > 5 {
		hits++
	}

	pred := &Prediction{ModelName: "lexical"}
	switch {
	case hits >= 3:
		pred.Label = LabelFake
		pred.Confidence = 0.75
	case hits >= 1:
		pred.Label = LabelFake
		pred.Confidence = 0.55
	default:
		pred.Label = LabelReal
		pred.Confidence = 0.55
	}

	return pred, nil
}

func isAllUpper(w string) bool {
	hasLetter := false
	for _, r := range w {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
