package analytics

import (
	"testing"

	"guardian/server/internal/models"
	"guardian/server/internal/valuation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newService() *Service {
	return NewService(valuation.NewEngine(valuation.DefaultRates()))
}

func TestPortfolio_Empty(t *testing.T) {
	summary := newService().Portfolio("u1", nil)

	assert.Equal(t, 0, summary.ListingCount)
	assert.True(t, summary.TotalDeclared.IsZero())
	assert.True(t, summary.MeanDeclared.IsZero())
	assert.True(t, summary.ValuationDelta.IsZero())
}

func TestPortfolio_Totals(t *testing.T) {
	listings := []models.Listing{
		{City: "Nowhere", PropertyType: "apartment", AreaSqm: 100, Price: 12000000},
		{City: "Nowhere", PropertyType: "apartment", AreaSqm: 100, Price: 8000000},
	}

	summary := newService().Portfolio("u1", listings)

	// Each listing is estimated at 100000 * 100 * 1.0 = 10,000,000.
	assert.Equal(t, 2, summary.ListingCount)
	assert.True(t, summary.TotalDeclared.Equal(decimal.NewFromInt(20000000)), summary.TotalDeclared.String())
	assert.True(t, summary.MeanDeclared.Equal(decimal.NewFromInt(10000000)), summary.MeanDeclared.String())
	assert.True(t, summary.TotalEstimated.Equal(decimal.NewFromInt(20000000)), summary.TotalEstimated.String())
	assert.True(t, summary.ValuationDelta.IsZero(), summary.ValuationDelta.String())
}

func TestPortfolio_DeltaSign(t *testing.T) {
	overpriced := []models.Listing{
		{City: "Nowhere", PropertyType: "apartment", AreaSqm: 100, Price: 15000000},
	}

	summary := newService().Portfolio("u1", overpriced)

	assert.True(t, summary.ValuationDelta.Equal(decimal.NewFromInt(5000000)), summary.ValuationDelta.String())
}

func TestMarket_NoCoordinates(t *testing.T) {
	listings := []models.Listing{
		{City: "Lagos", Price: 30000000, AreaSqm: 150},
		{City: "Lagos", Price: 10000000, AreaSqm: 100},
	}

	stats := newService().Market("Lagos", listings)

	assert.Equal(t, 2, stats.ListingCount)
	assert.Equal(t, 0, stats.LocatedCount)
	assert.Nil(t, stats.CenterLatitude)
	// (200000 + 100000) / 2
	assert.Equal(t, float64(150000), stats.AvgPricePerSqm)
}

func TestMarket_CentroidAndSpread(t *testing.T) {
	listings := []models.Listing{
		{Latitude: floatPtr(6.45), Longitude: floatPtr(3.40)},
		{Latitude: floatPtr(6.55), Longitude: floatPtr(3.40)},
	}

	stats := newService().Market("Lagos", listings)

	require.NotNil(t, stats.CenterLatitude)
	require.NotNil(t, stats.CenterLongitude)
	assert.InDelta(t, 6.50, *stats.CenterLatitude, 1e-9)
	assert.InDelta(t, 3.40, *stats.CenterLongitude, 1e-9)
	// The two points are ~11 km apart, so each sits ~5.5 km from center.
	assert.InDelta(t, 5.5, stats.SpreadKm, 0.3)
}

func TestMarket_Empty(t *testing.T) {
	stats := newService().Market("Kano", nil)

	assert.Equal(t, 0, stats.ListingCount)
	assert.Equal(t, float64(0), stats.AvgPricePerSqm)
	assert.Equal(t, float64(0), stats.SpreadKm)
}
