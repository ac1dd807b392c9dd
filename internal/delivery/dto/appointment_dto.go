package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID      uuid.UUID `json:"patient_id" validate:"required"`
	PractitionerID uuid.UUID `json:"practitioner_id" validate:"required"`
	SpecialtyID    int       `json:"specialty_id" validate:"required,min=1"`
	Date           string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string    `json:"time" validate:"required,datetime=15:04"`
	Reason         string    `json:"reason" validate:"required"`
	Notes          string    `json:"notes" validate:"omitempty"`
	Status         string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
}

// UpdateAppointmentRequest patches an appointment. Nil fields stay
// unchanged; only these fields may be patched at all.
type UpdateAppointmentRequest struct {
	PractitionerID *uuid.UUID `json:"practitioner_id" validate:"omitempty"`
	SpecialtyID    *int       `json:"specialty_id" validate:"omitempty,min=1"`
	Date           *string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time           *string    `json:"time" validate:"omitempty,datetime=15:04"`
	Status         *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
	Reason         *string    `json:"reason" validate:"omitempty"`
	Notes          *string    `json:"notes" validate:"omitempty"`
}

type AvailabilityRequest struct {
	PractitionerID uuid.UUID  `json:"practitioner_id" validate:"required"`
	Date           string     `json:"date" validate:"required,datetime=2006-01-02"`
	Time           string     `json:"time" validate:"required,datetime=15:04"`
	ExcludeID      *uuid.UUID `json:"exclude_id" validate:"omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"patient_id"`
	PractitionerID   uuid.UUID `json:"practitioner_id"`
	SpecialtyID      int       `json:"specialty_id"`
	PatientName      string    `json:"patient_name,omitempty"`
	PractitionerName string    `json:"practitioner_name,omitempty"`
	SpecialtyName    string    `json:"specialty_name,omitempty"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}
