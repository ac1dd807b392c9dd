package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Filters compose conjunctively. Used by the repository layer to avoid
// coupling with delivery DTOs.
type AppointmentFilter struct {
	PatientID      *uuid.UUID
	PractitionerID *uuid.UUID
	Status         AppointmentStatus
	DateFrom       string // Format: YYYY-MM-DD
	DateTo         string // Format: YYYY-MM-DD
	Search         string // ILIKE over patient/practitioner/specialty name and reason
	Limit          int    // 0 means no cap
}
