package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	AgreementStatusPending = "pending"
	AgreementStatusChecked = "checked"
)

// AgreementRequest is an identity's application to rent a unit. The unique
// email index enforces one outstanding request per identity.
type AgreementRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	UserName    string    `gorm:"column:user_name" json:"user_name"`
	FloorNo     int       `gorm:"column:floor_no" json:"floor_no"`
	BlockName   string    `gorm:"column:block_name" json:"block_name"`
	ApartmentNo string    `gorm:"column:apartment_no;not null" json:"apartment_no"`
	Rent        float64   `gorm:"column:rent;not null" json:"rent"`
	// pending|checked
	Status string `gorm:"column:status;not null;index" json:"status"`

	// Client-supplied fields carried verbatim onto the contract.
	Details datatypes.JSON `gorm:"column:details" json:"details,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (AgreementRequest) TableName() string { return "agreement_request" }

func (a *AgreementRequest) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = AgreementStatusPending
	}
	return nil
}
