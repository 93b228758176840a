package models

// RiskLevel buckets a fraud score for display.
type RiskLevel string

// Recommendation is the workflow action suggested for a listing under review.
type Recommendation string

const (
	RiskVeryLow RiskLevel = "VERY_LOW"
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"

	RecommendApprove Recommendation = "APPROVE"
	RecommendReview  Recommendation = "REVIEW"
	RecommendReject  Recommendation = "REJECT"
)

// ScoreResult is the outcome of a fraud check on a single listing.
type ScoreResult struct {
	FraudScore     int            `json:"fraud_score"`
	RiskLevel      RiskLevel      `json:"risk_level"`
	Indicators     []string       `json:"indicators"`
	Recommendation Recommendation `json:"recommendation"`
}

// ValuationFactors records the intermediate multipliers behind an estimate.
type ValuationFactors struct {
	BaseRatePerSqm     float64 `json:"base_rate_per_sqm"`
	TypeMultiplier     float64 `json:"type_multiplier"`
	AreaSqm            float64 `json:"area_sqm"`
	BedroomAdjustment  float64 `json:"bedroom_adjustment"`
	BathroomAdjustment float64 `json:"bathroom_adjustment"`
}

// ValuationResult is a point-estimate fair price for a listing.
type ValuationResult struct {
	PredictedPrice float64          `json:"predicted_price"`
	PricePerSqm    float64          `json:"price_per_sqm"`
	Confidence     float64          `json:"confidence"`
	Factors        ValuationFactors `json:"factors"`
}
