package model

import (
	"encoding/json"
	"time"
)

// Interaction types tracked for popularity scoring. The personalized feed
// ranks by view_count + 2*favorite_count + 3*purchase_count.
const (
	InteractionView     = "view"
	InteractionFavorite = "favorite"
	InteractionPurchase = "purchase"
)

type Interaction struct {
	UserID          int64  `json:"user_id"`
	ProductID       int64  `json:"product_id"`
	InteractionType string `json:"interaction_type"`
}

type InteractionRequest struct {
	ProductID       int64  `json:"product_id"`
	InteractionType string `json:"interaction_type"`
}

type Preferences struct {
	UserID              int64           `json:"user_id"`
	PreferredCategories json.RawMessage `json:"preferred_categories,omitempty"`
	PreferredPriceRange json.RawMessage `json:"preferred_price_range,omitempty"`
	PreferredLocations  json.RawMessage `json:"preferred_locations,omitempty"`
	LastUpdated         time.Time       `json:"last_updated"`
}

type PreferencesRequest struct {
	Categories json.RawMessage `json:"categories"`
	PriceRange json.RawMessage `json:"price_range"`
	Locations  json.RawMessage `json:"locations"`
}

// RecommendedProduct is a product plus its popularity score.
type RecommendedProduct struct {
	Product
	PopularityScore int `json:"popularity_score"`
}
