package repository

import (
	"errors"

	"medicitas-api/internal/domain/entity"
	domainRepo "medicitas-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prototypeRepository struct{}

func NewPrototypeRepository() domainRepo.PrototypeRepository {
	return &prototypeRepository{}
}

func (r *prototypeRepository) Create(db *gorm.DB, prototype *entity.Prototype) error {
	return db.Create(prototype).Error
}

func (r *prototypeRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prototype, error) {
	var prototype entity.Prototype
	err := db.Preload("Creator").Where("id = ?", id).First(&prototype).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prototype, nil
}

func (r *prototypeRepository) FindAll(db *gorm.DB, filter *entity.PrototypeFilter) ([]entity.Prototype, error) {
	query := db.Model(&entity.Prototype{}).Preload("Creator")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Device != "" {
		query = query.Where("device = ?", filter.Device)
	}
	if filter.CreatedBy != "" {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Search != "" {
		term := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", term, term)
	}

	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var prototypes []entity.Prototype
	if err := query.Find(&prototypes).Error; err != nil {
		return nil, err
	}
	return prototypes, nil
}

func (r *prototypeRepository) Update(db *gorm.DB, prototype *entity.Prototype) error {
	return db.Save(prototype).Error
}

func (r *prototypeRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Prototype{})
	return result.RowsAffected, result.Error
}
