package repository

import (
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentRepository persists appointments and answers the slot
// occupancy question the availability engine is built on.
type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	FindByDateRange(db *gorm.DB, from, to string) ([]entity.Appointment, error)
	// CountAtSlot counts non-cancelled appointments at
	// (practitioner, date, time), optionally excluding one appointment id.
	CountAtSlot(db *gorm.DB, practitionerID uuid.UUID, date, timeOfDay string, excludeID *uuid.UUID) (int64, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	// CancelScheduled flips status to cancelled only while the appointment
	// is still scheduled. Returns affected rows so double-cancel races
	// resolve to exactly one winner.
	CancelScheduled(db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	CountBySpecialty(db *gorm.DB, specialtyID int) (int64, error)
	CountByUser(db *gorm.DB, userID uuid.UUID) (int64, error)
}
