package ranking

import (
	"sort"

	"guardian/server/internal/models"
)

// Score terms. Every rule contributes exactly one term per listing.
const (
	baseScore = 100

	budgetWithin     = 20
	budgetStretch    = 10
	budgetOver       = -30
	budgetStretchPct = 1.2

	locationMatch = 30
	typeMatch     = 25
	bedroomMatch  = 15
	verifiedBonus = 10
	qualityWeight = 0.1
)

// Rank scores listings against buyer preferences and returns them in
// descending match-score order. Ties keep their input order; the caller
// truncates to whatever page size it wants.
func Rank(prefs models.Preferences, listings []models.Listing) []models.RankedListing {
	ranked := make([]models.RankedListing, 0, len(listings))
	for _, l := range listings {
		ranked = append(ranked, models.RankedListing{
			Listing:    l,
			MatchScore: matchScore(prefs, l),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	return ranked
}

func matchScore(prefs models.Preferences, l models.Listing) float64 {
	score := float64(baseScore)

	switch {
	case l.Price <= prefs.Budget:
		score += budgetWithin
	case l.Price <= prefs.Budget*budgetStretchPct:
		score += budgetStretch
	default:
		score += budgetOver
	}

	if l.City == prefs.Location {
		score += locationMatch
	}
	if l.PropertyType == prefs.PropertyType {
		score += typeMatch
	}
	if prefs.Bedrooms != nil && l.Bedrooms != nil && *l.Bedrooms == *prefs.Bedrooms {
		score += bedroomMatch
	}
	if l.Verified {
		score += verifiedBonus
	}
	if l.QualityScore != nil {
		score += *l.QualityScore * qualityWeight
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
