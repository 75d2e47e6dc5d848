package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code            string    `gorm:"column:code;uniqueIndex;not null" json:"code"`
	DiscountPercent float64   `gorm:"column:discount_percent;not null" json:"discount_percent"`
	Description     string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (Coupon) TableName() string { return "coupon" }

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DiscountedRent applies the coupon to rent: the discount is rent divided by
// the coupon's percent figure, so 1000 at 20 yields 950.
func (c *Coupon) DiscountedRent(rent float64) float64 {
	return rent - rent/c.DiscountPercent
}
