package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents any account in the clinic: patients, clinical staff and
// administrators. Department, Specialty and LicenseNumber only apply to
// staff roles and stay empty otherwise.
type User struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string     `gorm:"type:text;not null" json:"-"`
	Role           string     `gorm:"type:varchar(50);not null;index" json:"role"`
	BirthDate      *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Address        string     `gorm:"type:text" json:"address,omitempty"`
	Phone          string     `gorm:"type:varchar(30)" json:"phone,omitempty"`
	EmergencyPhone string     `gorm:"type:varchar(30)" json:"emergency_phone,omitempty"`
	Sex            string     `gorm:"type:varchar(20)" json:"sex,omitempty"`
	Disability     string     `gorm:"type:varchar(100)" json:"disability,omitempty"`
	MaritalStatus  string     `gorm:"type:varchar(30)" json:"marital_status,omitempty"`
	Department     string     `gorm:"type:varchar(100)" json:"department,omitempty"`
	Specialty      string     `gorm:"type:varchar(100);index" json:"specialty,omitempty"`
	LicenseNumber  string     `gorm:"type:varchar(50)" json:"license_number,omitempty"`
	IsActive       *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Active reports whether the account may authenticate.
func (u *User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}
