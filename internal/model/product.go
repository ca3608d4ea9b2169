package model

import (
	"encoding/json"
	"time"
)

type Product struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description,omitempty"`
	Price             float64         `json:"price"`
	ImageURL          *string         `json:"image_url,omitempty"`
	CategoryID        *int64          `json:"category_id,omitempty"`
	Condition         *string         `json:"condition,omitempty"`
	CityID            *int64          `json:"city_id,omitempty"`
	CompatibilityInfo json.RawMessage `json:"compatibility_info,omitempty"`
	SellerName        *string         `json:"seller_name,omitempty"`
	CategoryName      *string         `json:"category_name,omitempty"`
	CityName          *string         `json:"city_name,omitempty"`
	StateName         *string         `json:"state_name,omitempty"`
	StateCode         *string         `json:"state_code,omitempty"`
	CountryName       *string         `json:"country_name,omitempty"`
	CountryCode       *string         `json:"country_code,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductInput is the create/update payload. The seller is never taken from
// the body; it comes from the authenticated identity.
type ProductInput struct {
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	Price             float64         `json:"price"`
	ImageURL          *string         `json:"image_url"`
	CategoryID        *int64          `json:"category_id"`
	Condition         *string         `json:"condition"`
	CityID            *int64          `json:"city_id"`
	CompatibilityInfo json.RawMessage `json:"compatibility_info"`
}

// ProductPage is a paginated slice of category listings.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
}
