package repository

import (
	"errors"

	"medicitas-api/internal/domain/entity"
	domainRepo "medicitas-api/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	return db.Create(session).Error
}

func (r *sessionRepository) FindActiveByTokenID(db *gorm.DB, tokenID string) (*entity.Session, error) {
	var session entity.Session
	err := db.Where("token_id = ? AND active = ?", tokenID, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Update(db *gorm.DB, session *entity.Session) error {
	return db.Save(session).Error
}

func (r *sessionRepository) Deactivate(db *gorm.DB, tokenID string) (int64, error) {
	result := db.Model(&entity.Session{}).
		Where("token_id = ? AND active = ?", tokenID, true).
		Update("active", false)
	return result.RowsAffected, result.Error
}
