package dto

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
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
}

type RefreshTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	Token     string        `json:"token"`
	ExpiresIn int64         `json:"expires_in"`
	User      *UserResponse `json:"user"`
}
