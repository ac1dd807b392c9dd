package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// IsValidAppointmentStatus reports whether s is a known status.
func IsValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// Appointment binds a patient to a practitioner for a (date, time) slot.
// At most one non-cancelled appointment may exist per
// (practitioner, date, time); the database enforces this with a partial
// unique index in addition to the pre-write availability check.
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	PractitionerID uuid.UUID         `gorm:"type:uuid;not null;index" json:"practitioner_id"`
	SpecialtyID    int               `gorm:"not null;index" json:"specialty_id"`
	Date           time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time           string            `gorm:"type:time;not null" json:"time"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Reason         string            `gorm:"type:text;not null" json:"reason"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      User      `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Practitioner User      `gorm:"foreignKey:PractitionerID" json:"practitioner,omitempty"`
	Specialty    Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled reports whether the appointment can still transition.
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled reports whether the appointment no longer occupies its slot.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsClosed reports whether the appointment reached a terminal state.
// Terminal appointments never transition again; re-opening means creating
// a new appointment.
func (a *Appointment) IsClosed() bool {
	return a.Status != AppointmentStatusScheduled
}
