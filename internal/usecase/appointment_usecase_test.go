package usecase

import (
	"context"
	"testing"
	"time"

	"medicitas-api/internal/delivery/dto"
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func scheduledAppointment() *entity.Appointment {
	date, _ := time.Parse("2006-01-02", "2026-09-15")
	return &entity.Appointment{
		ID:             uuid.New(),
		PatientID:      uuid.New(),
		PractitionerID: uuid.New(),
		SpecialtyID:    1,
		Date:           date,
		Time:           "10:00",
		Status:         entity.AppointmentStatusScheduled,
		Reason:         "Routine checkup",
	}
}

func bookingMocks(t *testing.T, patientID, practitionerID uuid.UUID) (*MockUserRepository, *MockSpecialtyRepository) {
	t.Helper()
	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, patientID).Return(&entity.User{
		ID:   patientID,
		Role: entity.RolePatient,
	}, nil)
	userRepo.On("FindByID", mock.Anything, practitionerID).Return(&entity.User{
		ID:   practitionerID,
		Role: entity.RoleSpecialistPhysician,
	}, nil)

	specialtyRepo := new(MockSpecialtyRepository)
	specialtyRepo.On("FindByID", mock.Anything, 1).Return(&entity.Specialty{ID: 1, Name: "Cardiology"}, nil)

	return userRepo, specialtyRepo
}

func TestAppointmentUsecase_Create_BooksFreeSlot(t *testing.T) {
	db, sqlMock := newTestDB(t)
	patientID, practitionerID := uuid.New(), uuid.New()
	userRepo, specialtyRepo := bookingMocks(t, patientID, practitionerID)

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CountAtSlot", mock.Anything, practitionerID, "2026-09-15", "10:00", (*uuid.UUID)(nil)).Return(int64(0), nil)
	appointmentRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.PractitionerID == practitionerID && a.Status == entity.AppointmentStatusScheduled
	})).Return(nil)
	appointmentRepo.On("FindByID", mock.Anything, mock.Anything).Return(scheduledAppointment(), nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, userRepo, specialtyRepo)

	resp, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		SpecialtyID:    1,
		Date:           "2026-09-15",
		Time:           "10:00",
		Reason:         "Routine checkup",
	})

	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	require.NoError(t, sqlMock.ExpectationsWereMet())
	appointmentRepo.AssertExpectations(t)
}

func TestAppointmentUsecase_Create_OccupiedSlotConflicts(t *testing.T) {
	db, sqlMock := newTestDB(t)
	patientID, practitionerID := uuid.New(), uuid.New()
	userRepo, specialtyRepo := bookingMocks(t, patientID, practitionerID)

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CountAtSlot", mock.Anything, practitionerID, "2026-09-15", "10:00", (*uuid.UUID)(nil)).Return(int64(1), nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, userRepo, specialtyRepo)

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		SpecialtyID:    1,
		Date:           "2026-09-15",
		Time:           "10:00",
		Reason:         "Routine checkup",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	appointmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_Create_UniqueIndexRaceMapsToConflict(t *testing.T) {
	db, sqlMock := newTestDB(t)
	patientID, practitionerID := uuid.New(), uuid.New()
	userRepo, specialtyRepo := bookingMocks(t, patientID, practitionerID)

	// A concurrent booking slipped between the check and the insert; the
	// partial unique index rejects the second writer.
	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CountAtSlot", mock.Anything, practitionerID, "2026-09-15", "10:00", (*uuid.UUID)(nil)).Return(int64(0), nil)
	appointmentRepo.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{
		Code:           "23505",
		ConstraintName: "uq_appointments_slot",
	})

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, userRepo, specialtyRepo)

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		SpecialtyID:    1,
		Date:           "2026-09-15",
		Time:           "10:00",
		Reason:         "Routine checkup",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestAppointmentUsecase_Create_UnknownPractitioner(t *testing.T) {
	db, _ := newTestDB(t)
	patientID, practitionerID := uuid.New(), uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, patientID).Return(&entity.User{ID: patientID, Role: entity.RolePatient}, nil)
	userRepo.On("FindByID", mock.Anything, practitionerID).Return(nil, nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), new(MockAppointmentRepository), userRepo, new(MockSpecialtyRepository))

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		SpecialtyID:    1,
		Date:           "2026-09-15",
		Time:           "10:00",
		Reason:         "Routine checkup",
	})

	assert.ErrorIs(t, err, ErrPractitionerNotFound)
}

func TestAppointmentUsecase_Create_NonClinicalPractitioner(t *testing.T) {
	db, _ := newTestDB(t)
	patientID, practitionerID := uuid.New(), uuid.New()

	userRepo := new(MockUserRepository)
	userRepo.On("FindByID", mock.Anything, patientID).Return(&entity.User{ID: patientID, Role: entity.RolePatient}, nil)
	userRepo.On("FindByID", mock.Anything, practitionerID).Return(&entity.User{ID: practitionerID, Role: entity.RoleSecurity}, nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), new(MockAppointmentRepository), userRepo, new(MockSpecialtyRepository))

	_, err := uc.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		SpecialtyID:    1,
		Date:           "2026-09-15",
		Time:           "10:00",
		Reason:         "Routine checkup",
	})

	assert.ErrorIs(t, err, ErrNotPractitioner)
}

func TestAppointmentUsecase_Update_NotesOnlyPatchSkipsSlotCheck(t *testing.T) {
	db, _ := newTestDB(t)
	appointment := scheduledAppointment()

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	appointmentRepo.On("Update", mock.Anything, mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.Notes == "Bring previous lab results"
	})).Return(nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Notes: strPtr("Bring previous lab results"),
	})

	require.NoError(t, err)
	appointmentRepo.AssertNotCalled(t, "CountAtSlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_Update_TerminalStateRejectsStatusChange(t *testing.T) {
	db, _ := newTestDB(t)
	appointment := scheduledAppointment()
	appointment.Status = entity.AppointmentStatusCompleted

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Status: strPtr("scheduled"),
	})

	assert.ErrorIs(t, err, ErrAppointmentClosed)
	appointmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_Update_MoveToOccupiedSlotConflicts(t *testing.T) {
	db, sqlMock := newTestDB(t)
	appointment := scheduledAppointment()

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	appointmentRepo.On("CountAtSlot", mock.Anything, appointment.PractitionerID, "2026-09-15", "11:00", mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == appointment.ID
	})).Return(int64(1), nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Time: strPtr("11:00"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	appointmentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_Update_OwnSlotIsExcluded(t *testing.T) {
	db, sqlMock := newTestDB(t)
	appointment := scheduledAppointment()

	// Re-submitting the current slot must not conflict with itself.
	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)
	appointmentRepo.On("CountAtSlot", mock.Anything, appointment.PractitionerID, "2026-09-15", "10:00", mock.MatchedBy(func(id *uuid.UUID) bool {
		return id != nil && *id == appointment.ID
	})).Return(int64(0), nil)
	appointmentRepo.On("Update", mock.Anything, appointment).Return(nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	_, err := uc.Update(context.Background(), appointment.ID, &dto.UpdateAppointmentRequest{
		Time: strPtr("10:00"),
	})

	require.NoError(t, err)
	require.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestAppointmentUsecase_Cancel_FreesScheduledAppointment(t *testing.T) {
	db, _ := newTestDB(t)
	id := uuid.New()

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CancelScheduled", mock.Anything, id).Return(int64(1), nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	assert.NoError(t, uc.Cancel(context.Background(), id))
}

func TestAppointmentUsecase_Cancel_ClosedAppointment(t *testing.T) {
	db, _ := newTestDB(t)
	appointment := scheduledAppointment()
	appointment.Status = entity.AppointmentStatusNoShow

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CancelScheduled", mock.Anything, appointment.ID).Return(int64(0), nil)
	appointmentRepo.On("FindByID", mock.Anything, appointment.ID).Return(appointment, nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	assert.ErrorIs(t, uc.Cancel(context.Background(), appointment.ID), ErrAppointmentClosed)
}

func TestAppointmentUsecase_Cancel_UnknownAppointment(t *testing.T) {
	db, _ := newTestDB(t)
	id := uuid.New()

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CancelScheduled", mock.Anything, id).Return(int64(0), nil)
	appointmentRepo.On("FindByID", mock.Anything, id).Return(nil, nil)

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	assert.ErrorIs(t, uc.Cancel(context.Background(), id), ErrAppointmentNotFound)
}

func TestAppointmentUsecase_FindByDateRange_RejectsBadDates(t *testing.T) {
	db, _ := newTestDB(t)
	uc := NewAppointmentUsecase(db, newTestLogger(), new(MockAppointmentRepository), new(MockUserRepository), new(MockSpecialtyRepository))

	_, err := uc.FindByDateRange(context.Background(), "15-09-2026", "2026-09-20")

	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestAppointmentUsecase_CheckAvailability(t *testing.T) {
	db, _ := newTestDB(t)
	practitionerID := uuid.New()

	appointmentRepo := new(MockAppointmentRepository)
	appointmentRepo.On("CountAtSlot", mock.Anything, practitionerID, "2026-09-15", "10:00", (*uuid.UUID)(nil)).Return(int64(0), nil).Once()
	appointmentRepo.On("CountAtSlot", mock.Anything, practitionerID, "2026-09-15", "11:00", (*uuid.UUID)(nil)).Return(int64(1), nil).Once()

	uc := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, new(MockUserRepository), new(MockSpecialtyRepository))

	free, err := uc.CheckAvailability(context.Background(), &dto.AvailabilityRequest{
		PractitionerID: practitionerID,
		Date:           "2026-09-15",
		Time:           "10:00",
	})
	require.NoError(t, err)
	assert.True(t, free)

	taken, err := uc.CheckAvailability(context.Background(), &dto.AvailabilityRequest{
		PractitionerID: practitionerID,
		Date:           "2026-09-15",
		Time:           "11:00",
	})
	require.NoError(t, err)
	assert.False(t, taken)
}
