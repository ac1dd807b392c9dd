package repository

import (
	"medicitas-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrototypeRepository interface {
	Create(db *gorm.DB, prototype *entity.Prototype) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prototype, error)
	FindAll(db *gorm.DB, filter *entity.PrototypeFilter) ([]entity.Prototype, error)
	Update(db *gorm.DB, prototype *entity.Prototype) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
