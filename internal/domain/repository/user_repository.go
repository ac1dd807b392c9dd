package repository

import (
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository persists users. Methods take the *gorm.DB handle so
// callers can pass either the shared connection or an open transaction.
type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindAll(db *gorm.DB, filter *entity.UserFilter) ([]entity.User, error)
	FindPractitionersBySpecialty(db *gorm.DB, specialty string) ([]entity.User, error)
	FindPatients(db *gorm.DB) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	Deactivate(db *gorm.DB, id uuid.UUID) (int64, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
