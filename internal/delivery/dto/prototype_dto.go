package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePrototypeRequest struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"omitempty"`
	Category    string `json:"category" validate:"required,oneof=dashboard forms lists modals"`
	Device      string `json:"device" validate:"required,oneof=desktop mobile tablet"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type UpdatePrototypeRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2"`
	Description *string `json:"description" validate:"omitempty"`
	Category    *string `json:"category" validate:"omitempty,oneof=dashboard forms lists modals"`
	Device      *string `json:"device" validate:"omitempty,oneof=desktop mobile tablet"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

// Response DTOs

type PrototypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Device      string    `json:"device"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatorName string    `json:"creator_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PrototypeListResponse struct {
	Prototypes []PrototypeResponse `json:"prototypes"`
	Total      int                 `json:"total"`
}
