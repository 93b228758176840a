package inference

import (
	"context"

	"guardian/server/internal/models"
)

// StubAnalyzer returns a canned analysis derived from listing metadata.
// It stands in for the inference API in development and tests.
type StubAnalyzer struct{}

func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{}
}

func (a *StubAnalyzer) AnalyzeListing(_ context.Context, listing *models.Listing) (*Analysis, error) {
	analysis := &Analysis{
		QualityScore: 50,
		Summary:      "Automated review unavailable; heuristic assessment only",
		Confidence:   0.5,
	}
	if listing == nil {
		analysis.QualityScore = 0
		analysis.Concerns = []string{"no listing data"}
		return analysis, nil
	}

	// Crude but deterministic: reward complete listings.
	if len(listing.Images) >= 3 {
		analysis.QualityScore += 25
	} else {
		analysis.Concerns = append(analysis.Concerns, "few photos")
	}
	if len(listing.Description) >= 100 {
		analysis.QualityScore += 25
	} else {
		analysis.Concerns = append(analysis.Concerns, "sparse description")
	}
	return analysis, nil
}

func (a *StubAnalyzer) Enabled() bool { return true }
