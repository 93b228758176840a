package models

import "time"

// Listing is a property record as declared by its owner.
type Listing struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	City         string    `json:"city"`
	PropertyType string    `json:"property_type"`
	Price        float64   `json:"price"`
	AreaSqm      float64   `json:"area_sqm"`
	Bedrooms     *int      `json:"bedrooms"`
	Bathrooms    *int      `json:"bathrooms"`
	Images       []string  `json:"images" gorm:"serializer:json"`
	Verified     bool      `json:"verified"`
	QualityScore *float64  `json:"quality_score"`
	OwnerID      string    `json:"owner_id"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	LedgerTxID   string    `json:"ledger_tx_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Preferences describes what a buyer is looking for.
type Preferences struct {
	Budget       float64 `json:"budget"`
	Location     string  `json:"location"`
	PropertyType string  `json:"property_type"`
	Bedrooms     *int    `json:"bedrooms"`
}

// RankedListing wraps a listing with its preference-fit score.
type RankedListing struct {
	Listing    Listing `json:"listing"`
	MatchScore float64 `json:"match_score"`
}
