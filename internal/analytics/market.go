package analytics

import (
	"math"

	"guardian/server/internal/models"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// MarketStats describes the geography and pricing of a city's listings.
type MarketStats struct {
	City            string   `json:"city"`
	ListingCount    int      `json:"listing_count"`
	LocatedCount    int      `json:"located_count"`
	AvgPricePerSqm  float64  `json:"avg_price_per_sqm"`
	CenterLatitude  *float64 `json:"center_latitude"`
	CenterLongitude *float64 `json:"center_longitude"`
	SpreadKm        float64  `json:"spread_km"`
}

// Market aggregates listings for one city. Listings without coordinates
// still count toward pricing but not toward the geographic center.
func (s *Service) Market(city string, listings []models.Listing) MarketStats {
	stats := MarketStats{City: city, ListingCount: len(listings)}

	var points []orb.Point
	var perSqmSum float64
	var perSqmCount int

	for _, l := range listings {
		if l.AreaSqm > 0 {
			perSqmSum += l.Price / l.AreaSqm
			perSqmCount++
		}
		if l.Latitude != nil && l.Longitude != nil {
			points = append(points, orb.Point{*l.Longitude, *l.Latitude})
		}
	}

	if perSqmCount > 0 {
		stats.AvgPricePerSqm = math.Round(perSqmSum / float64(perSqmCount))
	}

	stats.LocatedCount = len(points)
	if len(points) == 0 {
		return stats
	}

	center := centroid(points)
	lat, lng := center.Lat(), center.Lon()
	stats.CenterLatitude = &lat
	stats.CenterLongitude = &lng

	var maxDist float64
	for _, p := range points {
		if d := geo.Distance(center, p); d > maxDist {
			maxDist = d
		}
	}
	stats.SpreadKm = math.Round(maxDist/100) / 10 // one decimal, km

	return stats
}

func centroid(points []orb.Point) orb.Point {
	var sumLon, sumLat float64
	for _, p := range points {
		sumLon += p.Lon()
		sumLat += p.Lat()
	}
	n := float64(len(points))
	return orb.Point{sumLon / n, sumLat / n}
}
