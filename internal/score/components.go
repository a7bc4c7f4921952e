package score

import (
	"fmt"
	"strings"

	"github.com/pdelacruz/newscred/internal/classifier"
	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/textflags"
)

// Per-family default signals, substituted when a stage is absent or its
// collaborator failed. Confidence is always zero so defaults weigh on the
// score but never on trust.
var stageDefaults = map[model.SignalName]model.ComponentSignal{
	model.SignalClassifier:  {Score: 0.5, Confidence: 0.0},
	model.SignalEvidence:    {Score: 0.5, Confidence: 0.0},
	model.SignalAccountRisk: {Score: 0.7, Confidence: 0.0},
	model.SignalTextFlags:   {Score: 0.6, Confidence: 0.0},
	model.SignalSourceRep:   {Score: 0.5, Confidence: 0.0},
}

// DefaultSignal returns the documented degradation signal for a stage,
// recording why the stage produced nothing
func DefaultSignal(name model.SignalName, reason string) model.ComponentSignal {
	signal := stageDefaults[name]
	signal.Details = reason
	return signal
}

// ComponentScorer turns raw collaborator outputs into component signals
type ComponentScorer struct {
	reputation model.ReputationConfig
}

// NewComponentScorer creates a scorer with the given reputation table
func NewComponentScorer(reputation model.ReputationConfig) *ComponentScorer {
	return &ComponentScorer{reputation: reputation}
}

// Classifier maps a classifier prediction onto the credibility scale
func (s *ComponentScorer) Classifier(pred *classifier.Prediction) model.ComponentSignal {
	if pred == nil {
		return DefaultSignal(model.SignalClassifier, "No ML prediction available")
	}

	score := 0.0
	switch strings.ToLower(pred.Label) {
	case "real", "true", "credible":
		score = 1.0
	}

	return model.ComponentSignal{
		Score:      score,
		Confidence: pred.Confidence,
		Details:    fmt.Sprintf("ML model (%s) prediction: %s", pred.ModelName, pred.Label),
		Metadata:   map[string]interface{}{"model_used": pred.ModelName},
	}
}

// Evidence passes fused fact-check evidence through as a signal
func (s *ComponentScorer) Evidence(fused *model.FusedEvidence) model.ComponentSignal {
	if fused == nil {
		return DefaultSignal(model.SignalEvidence, "No fact check data available")
	}

	return model.ComponentSignal{
		Score:      fused.OverallScore,
		Confidence: fused.Confidence,
		Details: fmt.Sprintf("Fact check verdict: %s (based on %d sources)",
			fused.VerdictLabel, fused.EvidenceCount),
		Metadata: map[string]interface{}{
			"evidence_count":   fused.EvidenceCount,
			"source_diversity": fused.SourceDiversity,
			"verdict":          fused.VerdictLabel,
		},
	}
}

// AccountRisk maps an account risk profile onto the credibility scale.
// Verified accounts get a capped boost on top of the risk-level base.
func (s *ComponentScorer) AccountRisk(profile *model.AccountRiskProfile) model.ComponentSignal {
	if profile == nil {
		return DefaultSignal(model.SignalAccountRisk, "No poser analysis available")
	}

	var score, confidence float64
	switch profile.RiskLevel {
	case model.RiskLow:
		score, confidence = 0.8, 0.7
	case model.RiskMedium:
		score, confidence = 0.5, 0.6
	case model.RiskHigh:
		score, confidence = 0.2, 0.8
	default:
		score, confidence = 0.5, 0.3
	}

	if profile.Verified {
		score = clamp(score + 0.2)
		confidence = clamp(confidence + 0.1)
	}

	details := fmt.Sprintf("Account risk: %s (suspicion score: %d)",
		profile.RiskLevel, profile.SuspicionScore)
	if len(profile.Flags) > 0 {
		details += ". Flags: " + strings.Join(firstN(profile.Flags, 3), ", ")
	}

	return model.ComponentSignal{
		Score:      score,
		Confidence: confidence,
		Details:    details,
		Metadata: map[string]interface{}{
			"risk_level":  string(profile.RiskLevel),
			"is_verified": profile.Verified,
		},
	}
}

// TextFlags scores preprocessing red flags. The signal starts neutral and
// each flag family subtracts from it; long-form content earns a small boost.
func (s *ComponentScorer) TextFlags(result *textflags.Result) model.ComponentSignal {
	if result == nil {
		return DefaultSignal(model.SignalTextFlags, "No preprocessing analysis available")
	}

	score := 0.6
	confidence := 0.5
	var flags []string

	if len(result.FakeIndicators) > 0 {
		score -= float64(len(result.FakeIndicators)) * 0.1
		for _, indicator := range firstN(result.FakeIndicators, 3) {
			flags = append(flags, "Fake news indicator: "+indicator)
		}
	}

	if result.Sarcasm.IsSarcastic {
		score -= result.Sarcasm.Confidence * 0.2
		flags = append(flags, fmt.Sprintf("Potential sarcasm detected (confidence: %.2f)",
			result.Sarcasm.Confidence))
	}

	if len(result.SlangDetected) > 3 {
		score -= 0.1
		flags = append(flags, fmt.Sprintf("High informal language usage (%d slang terms)",
			len(result.SlangDetected)))
	}

	if result.TokenCount < 10 {
		score -= 0.1
		flags = append(flags, "Very short content")
	} else if result.TokenCount > 1000 {
		score += 0.05
	}

	details := "Text analysis: No significant red flags"
	if len(flags) > 0 {
		details = "Text analysis: " + strings.Join(flags, ", ")
	}

	return model.ComponentSignal{
		Score:      clamp(score),
		Confidence: confidence,
		Details:    details,
		Metadata:   map[string]interface{}{"token_count": result.TokenCount},
	}
}

// SourceReputation looks the source domain up in the reputation table.
// Priority order: exact reliable/unreliable match, institutional TLD,
// social platform, then the neutral fallback per origin type.
func (s *ComponentScorer) SourceReputation(originType model.InputType, domain string) model.ComponentSignal {
	score := 0.5
	confidence := 0.4

	switch {
	case lookup(s.reputation.Reliable, domain, &score):
		confidence = 0.8
	case lookup(s.reputation.Unreliable, domain, &score):
		confidence = 0.8
	case strings.HasSuffix(domain, ".gov") || strings.HasSuffix(domain, ".edu"):
		score, confidence = 0.85, 0.7
	case originType == model.InputTypeSocialPost:
		score, confidence = 0.4, 0.5
	case originType == model.InputTypeText:
		score, confidence = 0.5, 0.3
	}

	details := "Source: " + string(originType)
	if domain != "" {
		details += " (" + domain + ")"
	}

	return model.ComponentSignal{
		Score:      score,
		Confidence: confidence,
		Details:    details,
		Metadata:   map[string]interface{}{"domain": domain, "source_type": string(originType)},
	}
}

func lookup(table map[string]float64, domain string, score *float64) bool {
	v, ok := table[domain]
	if ok {
		*score = v
	}
	return ok
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
