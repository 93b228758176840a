package inference

import (
	"context"

	"guardian/server/internal/models"
)

// Analysis is the model's read on a listing's presentation quality. It is
// reported alongside the rule-based fraud score, never folded into it.
type Analysis struct {
	QualityScore float64  `json:"quality_score"` // 0-100
	Summary      string   `json:"summary"`
	Concerns     []string `json:"concerns,omitempty"`
	Confidence   float64  `json:"confidence"`
}

// Analyzer is the interface for listing-analysis providers.
type Analyzer interface {
	// AnalyzeListing reviews a listing's text and imagery metadata.
	AnalyzeListing(ctx context.Context, listing *models.Listing) (*Analysis, error)

	// Enabled returns whether the analyzer is configured and ready.
	Enabled() bool
}
