package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Apartment is a rentable unit in the listing inventory.
type Apartment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Image       string    `gorm:"column:image" json:"image"`
	FloorNo     int       `gorm:"column:floor_no" json:"floor_no"`
	BlockName   string    `gorm:"column:block_name" json:"block_name"`
	ApartmentNo string    `gorm:"column:apartment_no;uniqueIndex;not null" json:"apartment_no"`
	Rent        float64   `gorm:"column:rent;not null;index" json:"rent"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (Apartment) TableName() string { return "apartment" }

func (a *Apartment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Announcement struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

func (Announcement) TableName() string { return "announcement" }

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
