package repository

import (
	"medicitas-api/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindByID(db *gorm.DB, id int) (*entity.Specialty, error)
	FindAllActive(db *gorm.DB) ([]entity.Specialty, error)
	Update(db *gorm.DB, specialty *entity.Specialty) error
	Delete(db *gorm.DB, id int) (int64, error)
}
