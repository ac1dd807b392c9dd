package dto

import "time"

// Request DTOs

type CreateSpecialtyRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
}

type UpdateSpecialtyRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description" validate:"omitempty"`
	IsActive    *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type SpecialtyResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SpecialtyListResponse struct {
	Specialties []SpecialtyResponse `json:"specialties"`
	Total       int                 `json:"total"`
}
