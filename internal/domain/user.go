package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity keyed by email.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Name      string    `gorm:"column:name" json:"name"`
	PhotoURL  string    `gorm:"column:photo_url" json:"photo_url,omitempty"`
	Role      Role      `gorm:"column:role;not null;index" json:"role"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleGuest
	}
	return nil
}
