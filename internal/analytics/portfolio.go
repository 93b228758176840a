package analytics

import (
	"guardian/server/internal/models"
	"guardian/server/internal/valuation"

	"github.com/shopspring/decimal"
)

// PortfolioSummary backs the owner dashboard. Money totals use decimal
// arithmetic so large naira sums do not accumulate float error.
type PortfolioSummary struct {
	OwnerID        string          `json:"owner_id"`
	ListingCount   int             `json:"listing_count"`
	TotalDeclared  decimal.Decimal `json:"total_declared_value"`
	MeanDeclared   decimal.Decimal `json:"mean_declared_value"`
	TotalEstimated decimal.Decimal `json:"total_estimated_value"`
	// ValuationDelta is declared minus estimated: positive means the owner
	// prices above the model.
	ValuationDelta decimal.Decimal `json:"valuation_delta"`
}

// Service computes dashboard aggregates over a set of listings.
type Service struct {
	engine *valuation.Engine
}

func NewService(engine *valuation.Engine) *Service {
	return &Service{engine: engine}
}

// Portfolio summarizes the given owner's listings.
func (s *Service) Portfolio(ownerID string, listings []models.Listing) PortfolioSummary {
	summary := PortfolioSummary{
		OwnerID:      ownerID,
		ListingCount: len(listings),
	}

	for i := range listings {
		declared := decimal.NewFromFloat(listings[i].Price)
		summary.TotalDeclared = summary.TotalDeclared.Add(declared)

		estimate := s.engine.Estimate(&listings[i])
		summary.TotalEstimated = summary.TotalEstimated.Add(decimal.NewFromFloat(estimate.PredictedPrice))
	}

	if len(listings) > 0 {
		summary.MeanDeclared = summary.TotalDeclared.
			Div(decimal.NewFromInt(int64(len(listings)))).
			Round(2)
	}
	summary.ValuationDelta = summary.TotalDeclared.Sub(summary.TotalEstimated)
	return summary
}
