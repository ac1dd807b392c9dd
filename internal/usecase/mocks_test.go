package usecase

import (
	"context"
	"testing"
	"time"

	"medicitas-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens gorm over a sqlmock connection. Repository calls are
// mocked at the interface level, so only transaction control statements
// reach sqlmock.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, sqlMock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	args := m.Called(db, id)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	args := m.Called(db, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindAll(db *gorm.DB, filter *entity.UserFilter) ([]entity.User, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) FindPractitionersBySpecialty(db *gorm.DB, specialty string) ([]entity.User, error) {
	args := m.Called(db, specialty)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) FindPatients(db *gorm.DB) ([]entity.User, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(db *gorm.DB, user *entity.User) error {
	args := m.Called(db, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	args := m.Called(db, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindActiveByTokenID(db *gorm.DB, tokenID string) (*entity.Session, error) {
	args := m.Called(db, tokenID)
	if s := args.Get(0); s != nil {
		return s.(*entity.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) Update(db *gorm.DB, session *entity.Session) error {
	args := m.Called(db, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Deactivate(db *gorm.DB, tokenID string) (int64, error) {
	args := m.Called(db, tokenID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAppointmentRepository mocks the AppointmentRepository interface
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	if a := args.Get(0); a != nil {
		return a.(*entity.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByDateRange(db *gorm.DB, from, to string) ([]entity.Appointment, error) {
	args := m.Called(db, from, to)
	return args.Get(0).([]entity.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountAtSlot(db *gorm.DB, practitionerID uuid.UUID, date, timeOfDay string, excludeID *uuid.UUID) (int64, error) {
	args := m.Called(db, practitionerID, date, timeOfDay, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(db, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) CancelScheduled(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountBySpecialty(db *gorm.DB, specialtyID int) (int64, error) {
	args := m.Called(db, specialtyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAppointmentRepository) CountByUser(db *gorm.DB, userID uuid.UUID) (int64, error) {
	args := m.Called(db, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSpecialtyRepository mocks the SpecialtyRepository interface
type MockSpecialtyRepository struct {
	mock.Mock
}

func (m *MockSpecialtyRepository) Create(db *gorm.DB, specialty *entity.Specialty) error {
	args := m.Called(db, specialty)
	return args.Error(0)
}

func (m *MockSpecialtyRepository) FindByID(db *gorm.DB, id int) (*entity.Specialty, error) {
	args := m.Called(db, id)
	if s := args.Get(0); s != nil {
		return s.(*entity.Specialty), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSpecialtyRepository) FindAllActive(db *gorm.DB) ([]entity.Specialty, error) {
	args := m.Called(db)
	return args.Get(0).([]entity.Specialty), args.Error(1)
}

func (m *MockSpecialtyRepository) Update(db *gorm.DB, specialty *entity.Specialty) error {
	args := m.Called(db, specialty)
	return args.Error(0)
}

func (m *MockSpecialtyRepository) Delete(db *gorm.DB, id int) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockSessionCache mocks the SessionCache interface
type MockSessionCache struct {
	mock.Mock
}

func (m *MockSessionCache) Store(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionCache) Exists(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionCache) Drop(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}
