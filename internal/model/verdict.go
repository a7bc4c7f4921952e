package model

import "time"

// Verdict labels, selected by the score/confidence ladder in the aggregator.
// "Insufficient Evidence" overrides the ladder below 0.3 confidence, and
// "Analysis Failed" marks the single fatal (insufficient content) outcome.
const (
	VerdictHighlyCredible    = "Highly Credible"
	VerdictLikelyCredible    = "Likely Credible"
	VerdictMostlyCredible    = "Mostly Credible"
	VerdictLeaningCredible   = "Leaning Credible"
	VerdictMixedEvidence     = "Mixed Evidence"
	VerdictUncertain         = "Uncertain"
	VerdictMostlyUnreliable  = "Mostly Unreliable"
	VerdictLeaningUnreliable = "Leaning Unreliable"
	VerdictHighlyUnreliable  = "Highly Unreliable"
	VerdictLikelyUnreliable  = "Likely Unreliable"

	VerdictInsufficient   = "Insufficient Evidence"
	VerdictAnalysisFailed = "Analysis Failed"
)

// CredibilityVerdict is the terminal artifact of one analysis request
type CredibilityVerdict struct {
	FinalScore  float64                        `json:"final_score"` // Weighted fusion of five signals, [0,1]
	Confidence  float64                        `json:"confidence"`  // Honest degradation signal, [0,1]
	Label       string                         `json:"verdict"`
	Explanation string                         `json:"explanation"`
	Breakdown   map[SignalName]ComponentSignal `json:"component_breakdown"`
	Content     *ExtractedContent              `json:"content,omitempty"`
	Timestamp   time.Time                      `json:"timestamp"`
	RecordID    string                         `json:"record_id,omitempty"` // Set when persistence succeeded
}
