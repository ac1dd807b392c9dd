package repository

import (
	"medicitas-api/internal/domain/entity"

	"gorm.io/gorm"
)

// SessionRepository persists the server-side session rows that back
// token revocation.
type SessionRepository interface {
	Create(db *gorm.DB, session *entity.Session) error
	// FindActiveByTokenID returns the active session carrying tokenID,
	// or nil when none exists. Expiration is the caller's concern:
	// refresh accepts expired rows, validation does not.
	FindActiveByTokenID(db *gorm.DB, tokenID string) (*entity.Session, error)
	Update(db *gorm.DB, session *entity.Session) error
	// Deactivate marks the session carrying tokenID inactive. Returns
	// affected rows; revoking an unknown token is a no-op.
	Deactivate(db *gorm.DB, tokenID string) (int64, error)
}
