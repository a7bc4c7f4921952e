package factcheck

import "github.com/pdelacruz/newscred/internal/model"

// Verdict labels for fused fact-check evidence
const (
	verdictLikelyTrue     = "Likely True"
	verdictLeaningTrue    = "Leaning True"
	verdictMixedUncertain = "Mixed/Uncertain"
	verdictLeaningFalse   = "Leaning False"
	verdictLikelyFalse    = "Likely False"
	verdictNoFactChecks   = "No fact checks found"
)

// Fuse combines every review across every claim into one aggregate evidence
// judgment. It is a pure function: the same claim list always produces the
// same output.
func Fuse(claims []model.EvidenceClaim) model.FusedEvidence {
	var ratings []model.NormalizedRating
	publishers := make(map[string]bool)

	for _, claim := range claims {
		for _, review := range claim.Reviews {
			ratings = append(ratings, review.NormalizedRating)
			if review.Publisher != "" {
				publishers[review.Publisher] = true
			}
		}
	}

	if len(ratings) == 0 {
		return model.FusedEvidence{
			Claims:       claims,
			OverallScore: 0.5,
			Confidence:   0.0,
			VerdictLabel: verdictNoFactChecks,
			Agreement:    1.0,
		}
	}

	// Confidence-weighted mean, with an unweighted fallback when every
	// rating carries zero normalization confidence
	var weightedSum, totalWeight float64
	for _, r := range ratings {
		weightedSum += r.Score * r.Confidence
		totalWeight += r.Confidence
	}

	var overall float64
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
	} else {
		var sum float64
		for _, r := range ratings {
			sum += r.Score
		}
		overall = sum / float64(len(ratings))
	}

	agreement := scoreAgreement(ratings, overall)
	diversity := len(publishers)

	// Volume, source independence, and agreement each contribute a bounded
	// share; excess evidence cannot push confidence past 1.0
	confidence := float64(len(ratings))/10*0.4 + float64(diversity)/5*0.3 + agreement*0.3
	if confidence > 1.0 {
		confidence = 1.0
	}

	return model.FusedEvidence{
		Claims:          claims,
		OverallScore:    overall,
		Confidence:      confidence,
		VerdictLabel:    scoreToVerdict(overall),
		EvidenceCount:   len(ratings),
		SourceDiversity: diversity,
		Agreement:       agreement,
	}
}

// FuseQueries performs second-level fusion over per-phrase query results,
// combining them by the same confidence-weighted-mean rule.
func FuseQueries(results []model.FusedEvidence) model.FusedEvidence {
	if len(results) == 0 {
		return model.FusedEvidence{
			OverallScore: 0.5,
			Confidence:   0.0,
			VerdictLabel: verdictNoFactChecks,
			Agreement:    1.0,
		}
	}
	if len(results) == 1 {
		return results[0]
	}

	var claims []model.EvidenceClaim
	publishers := make(map[string]bool)
	evidenceCount := 0
	for _, r := range results {
		claims = append(claims, r.Claims...)
		evidenceCount += r.EvidenceCount
		for _, c := range r.Claims {
			for _, review := range c.Reviews {
				if review.Publisher != "" {
					publishers[review.Publisher] = true
				}
			}
		}
	}

	var weightedSum, totalWeight float64
	for _, r := range results {
		weightedSum += r.OverallScore * r.Confidence
		totalWeight += r.Confidence
	}

	var overall, confidence float64
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
		confidence = totalWeight / float64(len(results))
	} else {
		var sum float64
		for _, r := range results {
			sum += r.OverallScore
		}
		overall = sum / float64(len(results))
		confidence = 0.3
	}
	if confidence > 1.0 {
		confidence = 1.0
	}

	var scores []model.NormalizedRating
	for _, r := range results {
		scores = append(scores, model.NormalizedRating{Score: r.OverallScore, Confidence: r.Confidence})
	}

	return model.FusedEvidence{
		Claims:          claims,
		OverallScore:    overall,
		Confidence:      confidence,
		VerdictLabel:    scoreToVerdict(overall),
		EvidenceCount:   evidenceCount,
		SourceDiversity: len(publishers),
		Agreement:       scoreAgreement(scores, overall),
	}
}

// scoreAgreement maps the variance of rating scores around the fused mean
// onto [0,1]. Variance at or above 0.25 counts as total disagreement; a
// single rating always agrees with itself.
func scoreAgreement(ratings []model.NormalizedRating, mean float64) float64 {
	if len(ratings) < 2 {
		return 1.0
	}

	var variance float64
	for _, r := range ratings {
		d := r.Score - mean
		variance += d * d
	}
	variance /= float64(len(ratings))

	agreement := 1 - variance*4
	if agreement < 0 {
		agreement = 0
	}
	return agreement
}

// scoreToVerdict maps a fused score onto the evidence verdict ladder
func scoreToVerdict(score float64) string {
	switch {
	case score >= 0.8:
		return verdictLikelyTrue
	case score >= 0.6:
		return verdictLeaningTrue
	case score >= 0.4:
		return verdictMixedUncertain
	case score >= 0.2:
		return verdictLeaningFalse
	default:
		return verdictLikelyFalse
	}
}
