package score

import (
	"strings"
	"testing"

	"github.com/pdelacruz/newscred/internal/classifier"
	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/textflags"
)

func testScorer() *ComponentScorer {
	return NewComponentScorer(model.DefaultConfig().Reputation)
}

func TestClassifierSignal(t *testing.T) {
	s := testScorer()

	real := s.Classifier(&classifier.Prediction{Label: "real", Confidence: 0.9, ModelName: "gpt-4o-mini"})
	if real.Score != 1.0 || real.Confidence != 0.9 {
		t.Errorf("real signal = %+v", real)
	}

	fake := s.Classifier(&classifier.Prediction{Label: "fake", Confidence: 0.8, ModelName: "lexical"})
	if fake.Score != 0.0 || fake.Confidence != 0.8 {
		t.Errorf("fake signal = %+v", fake)
	}

	absent := s.Classifier(nil)
	if absent.Score != 0.5 || absent.Confidence != 0.0 {
		t.Errorf("absent signal = %+v", absent)
	}
}

func TestEvidenceSignal(t *testing.T) {
	s := testScorer()

	fused := &model.FusedEvidence{
		OverallScore:  0.2,
		Confidence:    0.75,
		VerdictLabel:  "Likely False",
		EvidenceCount: 6,
	}
	signal := s.Evidence(fused)
	if signal.Score != 0.2 || signal.Confidence != 0.75 {
		t.Errorf("signal = %+v", signal)
	}
	if !strings.Contains(signal.Details, "Likely False") || !strings.Contains(signal.Details, "6 sources") {
		t.Errorf("Details = %q", signal.Details)
	}

	absent := s.Evidence(nil)
	if absent.Score != 0.5 || absent.Confidence != 0.0 {
		t.Errorf("absent signal = %+v", absent)
	}
}

func TestAccountRiskSignal(t *testing.T) {
	s := testScorer()

	cases := []struct {
		name    string
		profile *model.AccountRiskProfile
		score   float64
		conf    float64
	}{
		{"low", &model.AccountRiskProfile{RiskLevel: model.RiskLow}, 0.8, 0.7},
		{"medium", &model.AccountRiskProfile{RiskLevel: model.RiskMedium}, 0.5, 0.6},
		{"high", &model.AccountRiskProfile{RiskLevel: model.RiskHigh}, 0.2, 0.8},
		{"unknown", &model.AccountRiskProfile{RiskLevel: model.RiskUnknown}, 0.5, 0.3},
		{"low verified", &model.AccountRiskProfile{RiskLevel: model.RiskLow, Verified: true}, 1.0, 0.8},
		{"absent", nil, 0.7, 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signal := s.AccountRisk(tc.profile)
			if signal.Score != tc.score || signal.Confidence != tc.conf {
				t.Errorf("signal = (%v, %v), want (%v, %v)",
					signal.Score, signal.Confidence, tc.score, tc.conf)
			}
		})
	}
}

func TestAccountRiskSignal_FlagsTruncated(t *testing.T) {
	s := testScorer()

	profile := &model.AccountRiskProfile{
		RiskLevel: model.RiskHigh,
		Flags:     []string{"one", "two", "three", "four"},
	}
	signal := s.AccountRisk(profile)
	if !strings.Contains(signal.Details, "one, two, three") {
		t.Errorf("Details = %q", signal.Details)
	}
	if strings.Contains(signal.Details, "four") {
		t.Errorf("Details should list at most 3 flags: %q", signal.Details)
	}
}

func TestTextFlagsSignal(t *testing.T) {
	s := testScorer()

	clean := s.TextFlags(&textflags.Result{TokenCount: 200})
	if clean.Score != 0.6 || clean.Confidence != 0.5 {
		t.Errorf("clean signal = %+v", clean)
	}
	if !strings.Contains(clean.Details, "No significant red flags") {
		t.Errorf("Details = %q", clean.Details)
	}

	// Two indicators subtract 0.2 from the 0.6 start
	flagged := s.TextFlags(&textflags.Result{
		FakeIndicators: []string{"breaking:", "click here"},
		TokenCount:     200,
	})
	if !almostEqual(flagged.Score, 0.4) {
		t.Errorf("flagged score = %v, want 0.4", flagged.Score)
	}

	sarcastic := s.TextFlags(&textflags.Result{
		Sarcasm:    textflags.SarcasmAnalysis{IsSarcastic: true, Confidence: 0.5},
		TokenCount: 200,
	})
	if !almostEqual(sarcastic.Score, 0.5) {
		t.Errorf("sarcastic score = %v, want 0.5", sarcastic.Score)
	}

	short := s.TextFlags(&textflags.Result{TokenCount: 5})
	if !almostEqual(short.Score, 0.5) {
		t.Errorf("short-content score = %v, want 0.5", short.Score)
	}

	long := s.TextFlags(&textflags.Result{TokenCount: 1500})
	if !almostEqual(long.Score, 0.65) {
		t.Errorf("long-content score = %v, want 0.65", long.Score)
	}

	absent := s.TextFlags(nil)
	if absent.Score != 0.6 || absent.Confidence != 0.0 {
		t.Errorf("absent signal = %+v", absent)
	}
}

func TestTextFlagsSignal_Clamped(t *testing.T) {
	s := testScorer()

	signal := s.TextFlags(&textflags.Result{
		FakeIndicators: []string{"a", "b", "c", "d", "e", "f", "g", "h"},
		Sarcasm:        textflags.SarcasmAnalysis{IsSarcastic: true, Confidence: 1.0},
		SlangDetected:  []string{"w", "x", "y", "z"},
		TokenCount:     3,
	})
	if signal.Score != 0.0 {
		t.Errorf("score = %v, want clamped to 0", signal.Score)
	}
}

func TestSourceReputationSignal(t *testing.T) {
	s := testScorer()

	cases := []struct {
		name   string
		origin model.InputType
		domain string
		score  float64
		conf   float64
	}{
		{"reliable", model.InputTypeURL, "bbc.com", 0.9, 0.8},
		{"unreliable", model.InputTypeURL, "fake-news-site.com", 0.1, 0.8},
		{"gov", model.InputTypeURL, "nasa.gov", 0.85, 0.7},
		{"edu", model.InputTypeURL, "mit.edu", 0.85, 0.7},
		{"social", model.InputTypeSocialPost, "facebook.com", 0.4, 0.5},
		{"user text", model.InputTypeText, "", 0.5, 0.3},
		{"unknown domain", model.InputTypeURL, "random-blog.xyz", 0.5, 0.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			signal := s.SourceReputation(tc.origin, tc.domain)
			if signal.Score != tc.score || signal.Confidence != tc.conf {
				t.Errorf("signal = (%v, %v), want (%v, %v)",
					signal.Score, signal.Confidence, tc.score, tc.conf)
			}
		})
	}
}

func TestDefaultSignal_RecordsReason(t *testing.T) {
	signal := DefaultSignal(model.SignalEvidence, "fact check api unreachable")
	if signal.Details != "fact check api unreachable" {
		t.Errorf("Details = %q", signal.Details)
	}
	if signal.Score != 0.5 || signal.Confidence != 0.0 {
		t.Errorf("signal = %+v", signal)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
