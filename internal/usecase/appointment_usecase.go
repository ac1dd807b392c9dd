package usecase

import (
	"context"
	"errors"
	"time"

	"medicitas-api/internal/converter"
	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"
	"medicitas-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrSlotConflict         = errors.New("practitioner is not available at that date and time")
	ErrAppointmentClosed    = errors.New("appointment is in a terminal state")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPractitionerNotFound = errors.New("practitioner not found")
	ErrNotPractitioner      = errors.New("user cannot be booked for appointments")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByDateRange(ctx context.Context, from, to string) (*dto.AppointmentListResponse, error)
	CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (bool, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	specialtyRepo   repository.SpecialtyRepository
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	specialtyRepo repository.SpecialtyRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		specialtyRepo:   specialtyRepo,
	}
}

// Create books a slot. The availability check and the insert run inside
// one transaction, and the partial unique index on
// (practitioner_id, date, time) WHERE status <> 'cancelled' backstops
// the check, so two concurrent requests for the same slot cannot both
// succeed.
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if err := u.validateReferences(ctx, &req.PatientID, &req.PractitionerID, &req.SpecialtyID); err != nil {
		return nil, err
	}

	status := entity.AppointmentStatusScheduled
	if req.Status != "" {
		status = entity.AppointmentStatus(req.Status)
	}

	appointment := &entity.Appointment{
		PatientID:      req.PatientID,
		PractitionerID: req.PractitionerID,
		SpecialtyID:    req.SpecialtyID,
		Date:           date,
		Time:           req.Time,
		Status:         status,
		Reason:         req.Reason,
		Notes:          req.Notes,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := u.appointmentRepo.CountAtSlot(tx, req.PractitionerID, req.Date, req.Time, nil)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlotConflict
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to commit appointment: %+v", err)
		return nil, err
	}

	return u.reload(ctx, appointment)
}

func (u *appointmentUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) List(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// Update applies a partial patch. A patch touching the slot
// (practitioner, date or time) re-runs the availability check against
// the resulting slot, excluding the appointment itself so moving it
// back to its own slot is a no-op. A patch that only touches notes or
// reason never re-checks.
func (u *appointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.Status != nil {
		next := entity.AppointmentStatus(*req.Status)
		if next != appointment.Status && appointment.IsClosed() {
			// Terminal states never transition; re-opening means
			// creating a new appointment.
			return nil, ErrAppointmentClosed
		}
	}

	if req.PractitionerID != nil && *req.PractitionerID != appointment.PractitionerID {
		if err := u.validateReferences(ctx, nil, req.PractitionerID, nil); err != nil {
			return nil, err
		}
	}
	if req.SpecialtyID != nil && *req.SpecialtyID != appointment.SpecialtyID {
		if err := u.validateReferences(ctx, nil, nil, req.SpecialtyID); err != nil {
			return nil, err
		}
	}

	slotTouched := req.PractitionerID != nil || req.Date != nil || req.Time != nil

	if err := applyAppointmentPatch(appointment, req); err != nil {
		return nil, err
	}

	if slotTouched {
		tx := u.db.WithContext(ctx).Begin()
		defer tx.Rollback()

		excludeID := appointment.ID
		count, err := u.appointmentRepo.CountAtSlot(tx, appointment.PractitionerID,
			appointment.Date.Format("2006-01-02"), appointment.Time, &excludeID)
		if err != nil {
			u.log.Warnf("Failed to check slot availability: %+v", err)
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlotConflict
		}

		if err := u.appointmentRepo.Update(tx, appointment); err != nil {
			if isDuplicateKeyError(err, "slot") {
				return nil, ErrSlotConflict
			}
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, err
		}

		if err := tx.Commit().Error; err != nil {
			if isDuplicateKeyError(err, "slot") {
				return nil, ErrSlotConflict
			}
			u.log.Warnf("Failed to commit appointment update: %+v", err)
			return nil, err
		}
	} else {
		if err := u.appointmentRepo.Update(u.db.WithContext(ctx), appointment); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, err
		}
	}

	return u.reload(ctx, appointment)
}

// Cancel is the recommended terminal transition: it frees the slot while
// preserving history. The update is conditional on the appointment still
// being scheduled, so concurrent cancels resolve to one winner.
func (u *appointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	affected, err := u.appointmentRepo.CancelScheduled(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		return err
	}
	if affected > 0 {
		return nil
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	return ErrAppointmentClosed
}

// Delete removes the appointment permanently. Destructive: history is
// lost. Cancellation is the recommended path.
func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := u.appointmentRepo.Delete(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// FindByDateRange serves chronological calendar views: inclusive bounds,
// ascending order. List serves most-recent-first admin views.
func (u *appointmentUsecase) FindByDateRange(ctx context.Context, from, to string) (*dto.AppointmentListResponse, error) {
	if _, err := time.Parse("2006-01-02", from); err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("2006-01-02", to); err != nil {
		return nil, ErrInvalidDateFormat
	}

	appointments, err := u.appointmentRepo.FindByDateRange(u.db.WithContext(ctx), from, to)
	if err != nil {
		u.log.Warnf("Failed to find appointments in range: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CheckAvailability is a point read against the slot invariant. It takes
// no locks; callers that go on to write get the transactional check and
// the unique index instead.
func (u *appointmentUsecase) CheckAvailability(ctx context.Context, req *dto.AvailabilityRequest) (bool, error) {
	count, err := u.appointmentRepo.CountAtSlot(u.db.WithContext(ctx), req.PractitionerID, req.Date, req.Time, req.ExcludeID)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return false, err
	}
	return count == 0, nil
}

func (u *appointmentUsecase) validateReferences(ctx context.Context, patientID, practitionerID *uuid.UUID, specialtyID *int) error {
	db := u.db.WithContext(ctx)

	if patientID != nil {
		patient, err := u.userRepo.FindByID(db, *patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient %s: %+v", *patientID, err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}
	}

	if practitionerID != nil {
		practitioner, err := u.userRepo.FindByID(db, *practitionerID)
		if err != nil {
			u.log.Warnf("Failed to find practitioner %s: %+v", *practitionerID, err)
			return err
		}
		if practitioner == nil {
			return ErrPractitionerNotFound
		}
		if !entity.IsClinicalRole(practitioner.Role) {
			return ErrNotPractitioner
		}
	}

	if specialtyID != nil {
		specialty, err := u.specialtyRepo.FindByID(db, *specialtyID)
		if err != nil {
			u.log.Warnf("Failed to find specialty %d: %+v", *specialtyID, err)
			return err
		}
		if specialty == nil {
			return ErrSpecialtyNotFound
		}
	}

	return nil
}

func (u *appointmentUsecase) reload(ctx context.Context, appointment *entity.Appointment) (*dto.AppointmentResponse, error) {
	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		// Return the bare record if the joined reload fails.
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}
	return converter.AppointmentToResponse(full), nil
}

func applyAppointmentPatch(appointment *entity.Appointment, req *dto.UpdateAppointmentRequest) error {
	if req.PractitionerID != nil {
		appointment.PractitionerID = *req.PractitionerID
	}
	if req.SpecialtyID != nil {
		appointment.SpecialtyID = *req.SpecialtyID
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return ErrInvalidDateFormat
		}
		appointment.Date = date
	}
	if req.Time != nil {
		appointment.Time = *req.Time
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	return nil
}
