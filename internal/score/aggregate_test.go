package score

import (
	"strings"
	"testing"

	"github.com/pdelacruz/newscred/internal/model"
)

func uniformSignals(score, confidence float64) map[model.SignalName]model.ComponentSignal {
	signals := make(map[model.SignalName]model.ComponentSignal, len(model.SignalOrder))
	for _, name := range model.SignalOrder {
		signals[name] = model.ComponentSignal{Score: score, Confidence: confidence, Details: "test"}
	}
	return signals
}

func TestWeightsSumToOne(t *testing.T) {
	weights := model.DefaultConfig().Scoring
	if !almostEqual(weights.Sum(), 1.0) {
		t.Fatalf("weight sum = %v, want 1.0", weights.Sum())
	}
}

func TestAggregate_VerdictBoundary(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	// All five at (0.8, 0.75): agreement bonus lifts confidence to 0.85
	v := a.Aggregate(uniformSignals(0.8, 0.75))
	if v.Label != model.VerdictHighlyCredible {
		t.Errorf("Label = %q, want Highly Credible (score %v, conf %v)",
			v.Label, v.FinalScore, v.Confidence)
	}

	// Same scores at confidence 0.55: bonus lifts to 0.65, below the 0.7 gate
	v = a.Aggregate(uniformSignals(0.8, 0.55))
	if v.Label != model.VerdictLikelyCredible {
		t.Errorf("Label = %q, want Likely Credible (conf %v)", v.Label, v.Confidence)
	}
}

func TestAggregate_RangeInvariant(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	for _, score := range []float64{0, 0.25, 0.5, 0.75, 1} {
		for _, conf := range []float64{0, 0.5, 1} {
			v := a.Aggregate(uniformSignals(score, conf))
			if v.FinalScore < 0 || v.FinalScore > 1 {
				t.Errorf("FinalScore = %v out of range", v.FinalScore)
			}
			if v.Confidence < 0 || v.Confidence > 1 {
				t.Errorf("Confidence = %v out of range", v.Confidence)
			}
		}
	}
}

func TestAggregate_AgreementBonus(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	// Identical scores: zero variance, bonus applies
	agreeing := a.Aggregate(uniformSignals(0.5, 0.5))
	if !almostEqual(agreeing.Confidence, 0.6) {
		t.Errorf("agreeing confidence = %v, want 0.6", agreeing.Confidence)
	}

	// Scores split to the extremes: high variance, no bonus
	split := uniformSignals(0, 0.5)
	split[model.SignalClassifier] = model.ComponentSignal{Score: 1, Confidence: 0.5}
	split[model.SignalEvidence] = model.ComponentSignal{Score: 1, Confidence: 0.5}
	disagreeing := a.Aggregate(split)
	if !almostEqual(disagreeing.Confidence, 0.5) {
		t.Errorf("disagreeing confidence = %v, want 0.5", disagreeing.Confidence)
	}
}

func TestAggregate_DegradedScenario(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	// Confident fake classification, every collaborator absent except a
	// flagged text analysis and an unknown source
	signals := map[model.SignalName]model.ComponentSignal{
		model.SignalClassifier:  {Score: 0.0, Confidence: 0.9, Details: "ML model (lexical) prediction: fake"},
		model.SignalEvidence:    DefaultSignal(model.SignalEvidence, "No fact check data available"),
		model.SignalAccountRisk: DefaultSignal(model.SignalAccountRisk, "No poser analysis available"),
		model.SignalTextFlags:   {Score: 0.4, Confidence: 0.5, Details: "Text analysis: Fake news indicator: breaking:, Fake news indicator: click here"},
		model.SignalSourceRep:   {Score: 0.5, Confidence: 0.4, Details: "Source: text"},
	}

	v := a.Aggregate(signals)
	if !almostEqual(v.FinalScore, 0.335) {
		t.Errorf("FinalScore = %v, want 0.335", v.FinalScore)
	}
	// confidence = 0.9*0.35 + 0.5*0.10 + 0.4*0.10 = 0.405, plus the 0.1
	// agreement bonus (variance of the five scores is 0.0536)
	if !almostEqual(v.Confidence, 0.505) {
		t.Errorf("Confidence = %v, want 0.505", v.Confidence)
	}
	if v.Label != model.VerdictLeaningUnreliable {
		t.Errorf("Label = %q, want Leaning Unreliable", v.Label)
	}
}

func TestAggregate_InsufficientEvidenceOverride(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	v := a.Aggregate(uniformSignals(0.9, 0.1))
	if v.Label != model.VerdictInsufficient {
		t.Errorf("Label = %q, want Insufficient Evidence", v.Label)
	}
}

func TestLabelLadder(t *testing.T) {
	cases := []struct {
		score, conf float64
		want        string
	}{
		{0.9, 0.8, model.VerdictHighlyCredible},
		{0.9, 0.6, model.VerdictLikelyCredible},
		{0.7, 0.65, model.VerdictMostlyCredible},
		{0.7, 0.5, model.VerdictLeaningCredible},
		{0.5, 0.55, model.VerdictMixedEvidence},
		{0.5, 0.4, model.VerdictUncertain},
		{0.3, 0.65, model.VerdictMostlyUnreliable},
		{0.3, 0.5, model.VerdictLeaningUnreliable},
		{0.1, 0.75, model.VerdictHighlyUnreliable},
		{0.1, 0.5, model.VerdictLikelyUnreliable},
		{0.9, 0.2, model.VerdictInsufficient},
	}

	for _, tc := range cases {
		if got := Label(tc.score, tc.conf); got != tc.want {
			t.Errorf("Label(%v, %v) = %q, want %q", tc.score, tc.conf, got, tc.want)
		}
	}
}

func TestExplanation(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	signals := uniformSignals(0.5, 0.5)
	signals[model.SignalClassifier] = model.ComponentSignal{
		Score: 0.0, Confidence: 0.9, Details: "ML model (gpt-4o-mini) prediction: fake",
	}
	signals[model.SignalEvidence] = model.ComponentSignal{
		Score: 0.9, Confidence: 0.8, Details: "Fact check verdict: Likely True (based on 4 sources)",
	}

	v := a.Aggregate(signals)

	if !strings.HasPrefix(v.Explanation, "Overall credibility score:") {
		t.Errorf("explanation opening wrong: %q", v.Explanation)
	}
	if !strings.Contains(v.Explanation, "Key factors:") {
		t.Errorf("missing key factors section: %q", v.Explanation)
	}
	// The two extreme signals must surface, with their impact markers
	if !strings.Contains(v.Explanation, "Classifier: ML model (gpt-4o-mini) prediction: fake (raises concerns)") {
		t.Errorf("classifier factor missing: %q", v.Explanation)
	}
	if !strings.Contains(v.Explanation, "Fact Check: Fact check verdict: Likely True (based on 4 sources) (supports credibility)") {
		t.Errorf("evidence factor missing: %q", v.Explanation)
	}
	if strings.Count(v.Explanation, "•") != 3 {
		t.Errorf("want exactly 3 bullet factors: %q", v.Explanation)
	}
}

func TestExplanation_ConfidenceNotes(t *testing.T) {
	a := NewAggregator(model.DefaultConfig().Scoring)

	low := a.Aggregate(uniformSignals(0.9, 0.2))
	if !strings.Contains(low.Explanation, "Low confidence") {
		t.Errorf("missing low-confidence note: %q", low.Explanation)
	}

	high := a.Aggregate(uniformSignals(0.9, 0.9))
	if !strings.Contains(high.Explanation, "High confidence") {
		t.Errorf("missing high-confidence note: %q", high.Explanation)
	}

	mid := a.Aggregate(uniformSignals(0.9, 0.55))
	if strings.Contains(mid.Explanation, "Note:") {
		t.Errorf("unexpected note at mid confidence: %q", mid.Explanation)
	}
}
