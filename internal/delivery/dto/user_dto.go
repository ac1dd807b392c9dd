package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateUserRequest is the admin variant of registration: any role,
// active flag settable.
type CreateUserRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	BirthDate      string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Address        string `json:"address" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
	EmergencyPhone string `json:"emergency_phone" validate:"omitempty"`
	Sex            string `json:"sex" validate:"required,oneof=male female other"`
	Disability     string `json:"disability" validate:"omitempty"`
	MaritalStatus  string `json:"marital_status" validate:"required,oneof=single married divorced widowed free_union"`
	Role           string `json:"role" validate:"required"`
	Department     string `json:"department" validate:"omitempty"`
	Specialty      string `json:"specialty" validate:"omitempty"`
	LicenseNumber  string `json:"license_number" validate:"omitempty"`
	IsActive       *bool  `json:"is_active" validate:"omitempty"`
}

// UpdateUserRequest patches a user. Nil fields stay unchanged.
type UpdateUserRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2"`
	Email          *string `json:"email" validate:"omitempty,email"`
	Password       *string `json:"password" validate:"omitempty,min=6"`
	BirthDate      *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address        *string `json:"address" validate:"omitempty"`
	Phone          *string `json:"phone" validate:"omitempty"`
	EmergencyPhone *string `json:"emergency_phone" validate:"omitempty"`
	Sex            *string `json:"sex" validate:"omitempty,oneof=male female other"`
	Disability     *string `json:"disability" validate:"omitempty"`
	MaritalStatus  *string `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed free_union"`
	Role           *string `json:"role" validate:"omitempty"`
	Department     *string `json:"department" validate:"omitempty"`
	Specialty      *string `json:"specialty" validate:"omitempty"`
	LicenseNumber  *string `json:"license_number" validate:"omitempty"`
	IsActive       *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	BirthDate      string    `json:"birth_date,omitempty"`
	Address        string    `json:"address,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	EmergencyPhone string    `json:"emergency_phone,omitempty"`
	Sex            string    `json:"sex,omitempty"`
	Disability     string    `json:"disability,omitempty"`
	MaritalStatus  string    `json:"marital_status,omitempty"`
	Department     string    `json:"department,omitempty"`
	Specialty      string    `json:"specialty,omitempty"`
	LicenseNumber  string    `json:"license_number,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
