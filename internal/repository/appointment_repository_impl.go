package repository

import (
	"errors"

	"medicitas-api/internal/domain/entity"
	domainRepo "medicitas-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Practitioner").Preload("Specialty").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Model(&entity.Appointment{}).
		Preload("Patient").Preload("Practitioner").Preload("Specialty")

	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.PractitionerID != nil {
		query = query.Where("appointments.practitioner_id = ?", *filter.PractitionerID)
	}
	if filter.Status != "" {
		query = query.Where("appointments.status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		query = query.Where("appointments.date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("appointments.date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN users AS patients ON patients.id = appointments.patient_id").
			Joins("JOIN users AS practitioners ON practitioners.id = appointments.practitioner_id").
			Joins("JOIN specialties ON specialties.id = appointments.specialty_id").
			Where("patients.name ILIKE ? OR practitioners.name ILIKE ? OR specialties.name ILIKE ? OR appointments.reason ILIKE ?",
				term, term, term, term)
	}

	query = query.Order("appointments.date DESC, appointments.time DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var appointments []entity.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDateRange(db *gorm.DB, from, to string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Preload("Practitioner").Preload("Specialty").
		Where("date BETWEEN ? AND ?", from, to).
		Order("date, time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountAtSlot(db *gorm.DB, practitionerID uuid.UUID, date, timeOfDay string, excludeID *uuid.UUID) (int64, error) {
	query := db.Model(&entity.Appointment{}).
		Where("practitioner_id = ? AND date = ? AND time = ? AND status <> ?",
			practitionerID, date, timeOfDay, entity.AppointmentStatusCancelled)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) CancelScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusScheduled).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CountBySpecialty(db *gorm.DB, specialtyID int) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("specialty_id = ?", specialtyID).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByUser(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("patient_id = ? OR practitioner_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}
