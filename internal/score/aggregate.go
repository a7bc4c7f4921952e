package score

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdelacruz/newscred/internal/model"
)

// Aggregator fuses the five component signals into a final verdict. It is
// a pure function over its inputs; construction is the only place
// configuration enters.
type Aggregator struct {
	weights model.ScoringConfig
}

// NewAggregator creates an aggregator with the given weights. The weights
// must sum to 1.0; they are never renormalized when a signal defaults.
func NewAggregator(weights model.ScoringConfig) *Aggregator {
	return &Aggregator{weights: weights}
}

// Aggregate computes the final score, confidence, verdict label, and
// explanation from the five collected signals. Missing signals must be
// substituted with their stage defaults before calling.
func (a *Aggregator) Aggregate(signals map[model.SignalName]model.ComponentSignal) *model.CredibilityVerdict {
	var finalScore, confidence float64
	for _, name := range model.SignalOrder {
		signal := signals[name]
		weight := a.weights.Weight(name)
		finalScore += signal.Score * weight
		confidence += signal.Confidence * weight
	}

	// Agreement across the five raw scores earns a confidence bonus
	if scoreVariance(signals) < 0.1 {
		confidence += 0.1
	}
	if confidence > 1 {
		confidence = 1
	}

	finalScore = round3(finalScore)
	confidence = round3(confidence)

	return &model.CredibilityVerdict{
		FinalScore:  finalScore,
		Confidence:  confidence,
		Label:       Label(finalScore, confidence),
		Explanation: explain(signals, finalScore, confidence),
		Breakdown:   signals,
	}
}

// Label selects the verdict label for a score/confidence pair. Below 0.3
// confidence the score is not trusted enough to name a direction.
func Label(score, confidence float64) string {
	if confidence < 0.3 {
		return model.VerdictInsufficient
	}

	switch {
	case score >= 0.8:
		if confidence >= 0.7 {
			return model.VerdictHighlyCredible
		}
		return model.VerdictLikelyCredible
	case score >= 0.6:
		if confidence >= 0.6 {
			return model.VerdictMostlyCredible
		}
		return model.VerdictLeaningCredible
	case score >= 0.4:
		if confidence >= 0.5 {
			return model.VerdictMixedEvidence
		}
		return model.VerdictUncertain
	case score >= 0.2:
		if confidence >= 0.6 {
			return model.VerdictMostlyUnreliable
		}
		return model.VerdictLeaningUnreliable
	default:
		if confidence >= 0.7 {
			return model.VerdictHighlyUnreliable
		}
		return model.VerdictLikelyUnreliable
	}
}

// explain renders the human-readable assessment: the overall numbers, the
// three signals that moved furthest from neutral, and a confidence note at
// either extreme
func explain(signals map[model.SignalName]model.ComponentSignal, finalScore, confidence float64) string {
	names := make([]model.SignalName, len(model.SignalOrder))
	copy(names, model.SignalOrder)
	sort.SliceStable(names, func(i, j int) bool {
		return math.Abs(signals[names[i]].Score-0.5) > math.Abs(signals[names[j]].Score-0.5)
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Overall credibility score: %.2f (confidence: %.2f)\n", finalScore, confidence)
	b.WriteString("\nKey factors:\n")

	for _, name := range names[:3] {
		signal := signals[name]
		impact := "neutral impact"
		if signal.Score >= 0.7 {
			impact = "supports credibility"
		} else if signal.Score <= 0.3 {
			impact = "raises concerns"
		}
		fmt.Fprintf(&b, "• %s: %s (%s)\n", displayName(name), signal.Details, impact)
	}

	if confidence < 0.5 {
		b.WriteString("\nNote: Low confidence due to limited or conflicting evidence.")
	} else if confidence >= 0.8 {
		b.WriteString("\nNote: High confidence based on multiple consistent sources.")
	}

	return b.String()
}

func displayName(name model.SignalName) string {
	parts := strings.Split(string(name), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

func scoreVariance(signals map[model.SignalName]model.ComponentSignal) float64 {
	mean := 0.0
	for _, name := range model.SignalOrder {
		mean += signals[name].Score
	}
	mean /= float64(len(model.SignalOrder))

	variance := 0.0
	for _, name := range model.SignalOrder {
		d := signals[name].Score - mean
		variance += d * d
	}
	return variance / float64(len(model.SignalOrder))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
