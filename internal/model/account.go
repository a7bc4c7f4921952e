package model

// RiskLevel classifies how suspicious a social account looks
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// AccountRiskProfile summarizes poser-detection analysis of a social account
type AccountRiskProfile struct {
	SuspicionScore int       `json:"suspicion_score"` // Accumulated heuristic points, >= 0
	RiskLevel      RiskLevel `json:"risk_level"`
	Verified       bool      `json:"verified"` // Platform-verified account
	Flags          []string  `json:"flags"`    // Human-readable reasons, in detection order
}

// ActivityMetrics holds the raw account activity numbers behind a risk profile
type ActivityMetrics struct {
	TotalPosts        int     `json:"total_posts"`
	RecentPosts30d    int     `json:"recent_posts_30d"`
	PostingFrequency  float64 `json:"posting_frequency_per_day"`
	AverageEngagement float64 `json:"average_engagement"`
	FollowerCount     int     `json:"follower_count"`
	AccountAgeDays    int     `json:"account_age_days"`
	AccountAgeKnown   bool    `json:"account_age_known"`
}
