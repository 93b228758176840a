package valuation

import (
	"math"
	"strings"

	"guardian/server/internal/models"
)

// Confidence is a placeholder until a model-backed estimator replaces the
// rate-table heuristic.
const Confidence = 0.75

// Rates holds the base-rate table and type multipliers. City lookup is
// case-sensitive, property-type lookup is lowercased; the existing product
// behavior keeps that asymmetry.
type Rates struct {
	BaseRatePerSqm  map[string]float64
	TypeMultipliers map[string]float64
}

// DefaultRates returns the deployment defaults (NGN per square meter).
func DefaultRates() Rates {
	return Rates{
		BaseRatePerSqm: map[string]float64{
			"Lagos":         250000,
			"Abuja":         200000,
			"Port Harcourt": 150000,
			"Ibadan":        120000,
			"Kano":          100000,
			"default":       100000,
		},
		TypeMultipliers: map[string]float64{
			"apartment":  1.0,
			"house":      1.2,
			"duplex":     1.5,
			"mansion":    2.0,
			"land":       0.7,
			"commercial": 1.3,
		},
	}
}

// Engine estimates fair prices from a fixed rate configuration.
type Engine struct {
	rates Rates
}

func NewEngine(rates Rates) *Engine {
	return &Engine{rates: rates}
}

// Estimate computes a point-estimate fair price for a listing. Unknown
// cities and property types fall back to defaults, never to an error.
func (e *Engine) Estimate(l *models.Listing) models.ValuationResult {
	if l == nil {
		l = &models.Listing{}
	}

	baseRate, ok := e.rates.BaseRatePerSqm[l.City]
	if !ok {
		baseRate = e.rates.BaseRatePerSqm["default"]
	}

	typeMultiplier, ok := e.rates.TypeMultipliers[strings.ToLower(l.PropertyType)]
	if !ok {
		typeMultiplier = 1.0
	}

	predicted := baseRate * l.AreaSqm * typeMultiplier

	// Two bedrooms and one bathroom are the neutral baseline.
	bedroomAdj := 1.0
	if l.Bedrooms != nil {
		bedroomAdj = 1 + float64(*l.Bedrooms-2)*0.1
	}
	bathroomAdj := 1.0
	if l.Bathrooms != nil {
		bathroomAdj = 1 + float64(*l.Bathrooms-1)*0.05
	}
	predicted *= bedroomAdj * bathroomAdj

	predicted = math.Round(predicted)

	perSqm := 0.0
	if l.AreaSqm > 0 {
		perSqm = math.Round(predicted / l.AreaSqm)
	}

	return models.ValuationResult{
		PredictedPrice: predicted,
		PricePerSqm:    perSqm,
		Confidence:     Confidence,
		Factors: models.ValuationFactors{
			BaseRatePerSqm:     baseRate,
			TypeMultiplier:     typeMultiplier,
			AreaSqm:            l.AreaSqm,
			BedroomAdjustment:  bedroomAdj,
			BathroomAdjustment: bathroomAdj,
		},
	}
}
