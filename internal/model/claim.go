package model

// NormalizedRating is a textual fact-check verdict mapped onto the unit interval
type NormalizedRating struct {
	Score      float64 `json:"score"`      // 1.0 completely true, 0.0 completely false
	Label      string  `json:"label"`      // Canonical label ("True", "Mostly False", ...)
	Confidence float64 `json:"confidence"` // How decisive the textual rating is
}

// ClaimReview is one publisher's review of a claim
type ClaimReview struct {
	Publisher        string           `json:"publisher"` // Reviewing organization name
	PublisherSite    string           `json:"publisher_site,omitempty"`
	URL              string           `json:"url,omitempty"` // Review article URL
	Title            string           `json:"title,omitempty"`
	TextualRating    string           `json:"textual_rating"`    // Free-text verdict as published
	NormalizedRating NormalizedRating `json:"normalized_rating"` // Deterministic normalization
}

// EvidenceClaim is a third-party fact-check record with its reviews
type EvidenceClaim struct {
	ClaimText string        `json:"claim_text"`
	Claimant  string        `json:"claimant,omitempty"`
	ClaimDate string        `json:"claim_date,omitempty"`
	Reviews   []ClaimReview `json:"reviews"`
}

// FusedEvidence is the aggregate judgment over a set of fact-check claims
type FusedEvidence struct {
	Claims          []EvidenceClaim `json:"claims"`
	OverallScore    float64         `json:"overall_score"`    // Confidence-weighted mean of review scores
	Confidence      float64         `json:"confidence"`       // Volume + diversity + agreement
	VerdictLabel    string          `json:"verdict_label"`    // "Likely True" ... "Likely False"
	EvidenceCount   int             `json:"evidence_count"`   // Total reviews considered
	SourceDiversity int             `json:"source_diversity"` // Distinct publishers
	Agreement       float64         `json:"agreement"`        // Inverse score variance, [0,1]
}
