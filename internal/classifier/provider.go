package classifier

import (
	"context"

	"github.com/pdelacruz/newscred/internal/model"
)

// Labels a classifier may emit
const (
	LabelReal = "real"
	LabelFake = "fake"
)

// Prediction is a single classifier verdict over a piece of text
type Prediction struct {
	// Label is "real" or "fake"
	Label string

	// Confidence in the label, 0.0 to 1.0
	Confidence float64

	// ModelName identifies what produced the prediction
	ModelName string
}

// Provider defines the interface for text credibility classifiers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Predict classifies the text as real or fake with a confidence
	Predict(ctx context.Context, text string) (*Prediction, error)
}

// New creates a classifier provider based on configuration
func New(cfg model.ClassifierConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIClassifier(cfg)
	case "lexical", "":
		return NewLexicalClassifier(), nil
	default:
		return nil, errUnknownProvider(cfg.Provider)
	}
}

type errUnknownProvider string

func (e errUnknownProvider) Error() string {
	return "unknown classifier provider: " + string(e) + " (supported: openai, lexical)"
}
