package scoring

import (
	"strings"

	"guardian/server/internal/models"
)

// Rule thresholds and weights. The absolute price floor is denominated in
// NGN and intentionally kept a literal until product decides otherwise.
const (
	minPricePerSqm = 1000
	maxPricePerSqm = 1000000
	minDescription = 50
	minImages      = 3
	lowPriceFloor  = 1000000

	weightPricePerSqm = 25
	weightDescription = 15
	weightImages      = 20
	weightKeywords    = 15
	weightLowPrice    = 10

	maxScore = 100
)

// spamKeywords are matched case-insensitively against title + description.
var spamKeywords = []string{"whatsapp only", "cash only", "urgent", "too good"}

// Indicator texts, one per rule.
const (
	IndicatorPriceAnomaly    = "Price per square meter is outside the typical market range"
	IndicatorThinDescription = "Description is missing or too short"
	IndicatorFewImages       = "Listing has fewer than 3 photos"
	IndicatorSuspiciousWords = "Listing text contains suspicious keywords"
	IndicatorUnusuallyCheap  = "Asking price is unusually low"
	IndicatorInvalidData     = "Invalid property data"
)

// Score computes a fraud-risk score for a listing. It never fails: a nil
// listing yields the explicit UNKNOWN/REVIEW sentinel rather than an error,
// so callers can distinguish "could not assess" from genuine zero risk.
func Score(l *models.Listing) models.ScoreResult {
	if l == nil {
		return models.ScoreResult{
			FraudScore:     0,
			RiskLevel:      models.RiskUnknown,
			Indicators:     []string{IndicatorInvalidData},
			Recommendation: models.RecommendReview,
		}
	}

	score := 0
	indicators := []string{}

	// Rule 1: price-per-area anomaly. Skipped entirely when the area is
	// unknown (zero) instead of dividing by zero.
	if l.AreaSqm > 0 {
		perSqm := l.Price / l.AreaSqm
		if perSqm < minPricePerSqm || perSqm > maxPricePerSqm {
			score += weightPricePerSqm
			indicators = append(indicators, IndicatorPriceAnomaly)
		}
	}

	// Rule 2: thin description.
	if len(l.Description) < minDescription {
		score += weightDescription
		indicators = append(indicators, IndicatorThinDescription)
	}

	// Rule 3: too few images.
	if len(l.Images) < minImages {
		score += weightImages
		indicators = append(indicators, IndicatorFewImages)
	}

	// Rule 4: spam keywords in title or description.
	text := strings.ToLower(l.Title + " " + l.Description)
	for _, kw := range spamKeywords {
		if strings.Contains(text, kw) {
			score += weightKeywords
			indicators = append(indicators, IndicatorSuspiciousWords)
			break
		}
	}

	// Rule 5: unusually low absolute price.
	if l.Price < lowPriceFloor {
		score += weightLowPrice
		indicators = append(indicators, IndicatorUnusuallyCheap)
	}

	if score > maxScore {
		score = maxScore
	}

	return models.ScoreResult{
		FraudScore:     score,
		RiskLevel:      riskLevel(score),
		Indicators:     indicators,
		Recommendation: recommendation(score),
	}
}

func riskLevel(score int) models.RiskLevel {
	switch {
	case score >= 70:
		return models.RiskHigh
	case score >= 40:
		return models.RiskMedium
	case score >= 20:
		return models.RiskLow
	default:
		return models.RiskVeryLow
	}
}

// recommendation thresholds deliberately sit between the risk-level bands:
// a listing can be MEDIUM risk yet already past the reject cutoff.
func recommendation(score int) models.Recommendation {
	switch {
	case score > 50:
		return models.RecommendReject
	case score > 30:
		return models.RecommendReview
	default:
		return models.RecommendApprove
	}
}
