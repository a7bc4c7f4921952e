package social

import "github.com/pdelacruz/newscred/internal/model"

// Suspicion points at which the risk level steps up
const (
	highRiskThreshold   = 4
	mediumRiskThreshold = 2
)

// AssessRisk scores an account against poser-detection heuristics. Each
// heuristic that fires adds points and a human-readable flag; the total
// maps to a risk level.
func AssessRisk(account *Account) model.AccountRiskProfile {
	if account == nil {
		return model.AccountRiskProfile{RiskLevel: model.RiskUnknown}
	}

	profile := model.AccountRiskProfile{Verified: account.Verified}
	m := account.Metrics

	if !account.Verified {
		profile.SuspicionScore++
		profile.Flags = append(profile.Flags, "account is not verified")
	}

	if m.AccountAgeKnown {
		switch {
		case m.AccountAgeDays < 30:
			profile.SuspicionScore += 2
			profile.Flags = append(profile.Flags, "account is less than 30 days old")
		case m.AccountAgeDays < 90:
			profile.SuspicionScore++
			profile.Flags = append(profile.Flags, "account is less than 90 days old")
		}
	}

	switch {
	case m.PostingFrequency > 10:
		profile.SuspicionScore += 2
		profile.Flags = append(profile.Flags, "very high posting frequency")
	case m.PostingFrequency > 5:
		profile.SuspicionScore++
		profile.Flags = append(profile.Flags, "high posting frequency")
	}

	if m.FollowerCount > 0 {
		ratio := m.AverageEngagement / float64(m.FollowerCount)
		if ratio > 0.1 {
			profile.SuspicionScore++
			profile.Flags = append(profile.Flags, "unusually high engagement for follower count")
		} else if ratio < 0.001 && m.TotalPosts > 0 {
			profile.SuspicionScore++
			profile.Flags = append(profile.Flags, "suspiciously low engagement for follower count")
		}
	}

	switch {
	case profile.SuspicionScore >= highRiskThreshold:
		profile.RiskLevel = model.RiskHigh
	case profile.SuspicionScore >= mediumRiskThreshold:
		profile.RiskLevel = model.RiskMedium
	default:
		profile.RiskLevel = model.RiskLow
	}

	return profile
}
