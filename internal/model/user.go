package model

import "time"

// User is the full identity record as stored. PasswordHash is opaque and
// never serialized outward.
type User struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Bio             *string    `json:"bio,omitempty"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	CityID          *int64     `json:"city_id,omitempty"`
	IsVerified      bool       `json:"is_verified"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastActive      *time.Time `json:"last_active,omitempty"`
}

// AuthUser is the slim representation returned from register/login.
type AuthUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity is the decoded token payload attached to a request after the
// auth middleware verifies the bearer token. Read-only from then on.
type Identity struct {
	UserID int64 `json:"user_id"`
}

// Profile is the public view of a user, with resolved location names and
// aggregate marketplace stats.
type Profile struct {
	ID              int64      `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Bio             *string    `json:"bio,omitempty"`
	PhoneNumber     *string    `json:"phone_number,omitempty"`
	ProfileImageURL *string    `json:"profile_image_url,omitempty"`
	IsVerified      bool       `json:"is_verified"`
	CityName        *string    `json:"city_name,omitempty"`
	StateName       *string    `json:"state_name,omitempty"`
	CountryName     *string    `json:"country_name,omitempty"`
	ListingCount    int        `json:"listing_count"`
	AverageRating   float64    `json:"average_rating"`
	ReviewCount     int        `json:"review_count"`
	CreatedAt       time.Time  `json:"created_at"`
	LastActive      *time.Time `json:"last_active,omitempty"`
}

// ProfileUpdate carries the mutable profile fields; nil means "keep".
type ProfileUpdate struct {
	Username    *string `json:"username"`
	Bio         *string `json:"bio"`
	PhoneNumber *string `json:"phone_number"`
	CityID      *int64  `json:"city_id"`
}

type UserStats struct {
	TotalListings  int     `json:"total_listings"`
	TotalSales     int     `json:"total_sales"`
	TotalPurchases int     `json:"total_purchases"`
	AverageRating  float64 `json:"average_rating"`
	TotalReviews   int     `json:"total_reviews"`
}

type Review struct {
	ID            int64     `json:"id"`
	ReviewerID    int64     `json:"reviewer_id"`
	ReviewedID    int64     `json:"reviewed_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	ReviewerName  string    `json:"reviewer_name"`
	ReviewerImage *string   `json:"reviewer_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
