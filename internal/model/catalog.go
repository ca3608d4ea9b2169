package model

import "time"

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type State struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"country_id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
}

type City struct {
	ID          int64   `json:"id"`
	StateID     int64   `json:"state_id"`
	Name        string  `json:"name"`
	StateName   *string `json:"state_name,omitempty"`
	StateCode   *string `json:"state_code,omitempty"`
	CountryName *string `json:"country_name,omitempty"`
}

// VehicleRef is one node of the type → make → model → submodel taxonomy.
type VehicleRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GarageItem struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Description       *string   `json:"description,omitempty"`
	ImageURL          *string   `json:"image_url,omitempty"`
	VehicleTypeID     *int64    `json:"vehicle_type_id,omitempty"`
	VehicleYear       *int      `json:"vehicle_year,omitempty"`
	VehicleMakeID     *int64    `json:"vehicle_make_id,omitempty"`
	VehicleModelID    *int64    `json:"vehicle_model_id,omitempty"`
	VehicleSubmodelID *int64    `json:"vehicle_submodel_id,omitempty"`
	IsPrimary         bool      `json:"is_primary"`
	CreatedAt         time.Time `json:"created_at"`
}

type GarageItemInput struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	ImageURL          *string `json:"image_url"`
	VehicleTypeID     *int64  `json:"vehicle_type_id"`
	VehicleYear       *int    `json:"vehicle_year"`
	VehicleMakeID     *int64  `json:"vehicle_make_id"`
	VehicleModelID    *int64  `json:"vehicle_model_id"`
	VehicleSubmodelID *int64  `json:"vehicle_submodel_id"`
}
