package entity

import (
	"time"

	"github.com/google/uuid"
)

// Prototype is a high-fidelity UI prototype stored in the design gallery.
type Prototype struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Device      string    `gorm:"type:varchar(50);not null;index" json:"device"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Creator User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Prototype) TableName() string {
	return "prototypes"
}
