package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server-side record that a bearer token is still honored.
// Tokens are self-contained, so revocation works by flipping Active off:
// validation requires an active, unexpired row in addition to a valid
// signature. Refresh rotates TokenID and extends ExpiresAt on the same row.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"token_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Active    *bool     `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Session) TableName() string {
	return "sessions"
}

// Valid reports whether the session is active and not past expiration.
func (s *Session) Valid(now time.Time) bool {
	return s.Active != nil && *s.Active && now.Before(s.ExpiresAt)
}
