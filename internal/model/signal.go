package model

// SignalName identifies one of the five signal families
type SignalName string

const (
	SignalClassifier  SignalName = "classifier"        // ML model prediction
	SignalEvidence    SignalName = "fact_check"        // Fused fact-check evidence
	SignalAccountRisk SignalName = "account_risk"      // Social account risk profile
	SignalTextFlags   SignalName = "text_flags"        // Preprocessing red flags
	SignalSourceRep   SignalName = "source_reputation" // Domain reputation lookup
)

// SignalOrder is the canonical ordering of the five signal families.
// Aggregation weights, explanation tie-breaks, and breakdown rendering
// all follow this order.
var SignalOrder = []SignalName{
	SignalClassifier,
	SignalEvidence,
	SignalAccountRisk,
	SignalTextFlags,
	SignalSourceRep,
}

// ComponentSignal is one independently produced credibility judgment.
// Score 1.0 means maximally credible, 0.0 maximally not. Signals are
// write-once: every stage builds a fresh value, nothing mutates one.
type ComponentSignal struct {
	Score      float64                `json:"score"`              // Credibility in [0,1]
	Confidence float64                `json:"confidence"`         // Trust in this signal, [0,1]
	Details    string                 `json:"details"`            // Human-readable provenance
	Metadata   map[string]interface{} `json:"metadata,omitempty"` // Transparent supporting data
}
