package model

import "errors"

var (
	// User related errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token related errors
	ErrInvalidToken = errors.New("invalid token")

	// Permission/Access related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Resource errors
	ErrProductNotFound    = errors.New("product not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrGarageItemNotFound = errors.New("garage item not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrVehicleNotFound    = errors.New("vehicle not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
