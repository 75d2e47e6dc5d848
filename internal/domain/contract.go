package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActiveContract is the single materialized rent agreement of a member. It
// lives from acceptance until settlement.
type ActiveContract struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	AgreementID uuid.UUID `gorm:"type:uuid;column:agreement_id;index" json:"agreement_id"`
	UserName    string    `gorm:"column:user_name" json:"user_name"`
	FloorNo     int       `gorm:"column:floor_no" json:"floor_no"`
	BlockName   string    `gorm:"column:block_name" json:"block_name"`
	ApartmentNo string    `gorm:"column:apartment_no;not null" json:"apartment_no"`
	Rent        float64   `gorm:"column:rent;not null" json:"rent"`
	// Paid-through month marker, free-form as sent by the client ("2026-10", "October").
	Month   string         `gorm:"column:month" json:"month,omitempty"`
	Details datatypes.JSON `gorm:"column:details" json:"details,omitempty"`

	AcceptedAt time.Time `gorm:"column:accepted_at;not null" json:"accepted_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (ActiveContract) TableName() string { return "active_contract" }

func (c *ActiveContract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.AcceptedAt.IsZero() {
		c.AcceptedAt = time.Now().UTC()
	}
	return nil
}

// ContractFromAgreement materializes a contract from the submitted request.
func ContractFromAgreement(req *AgreementRequest) *ActiveContract {
	return &ActiveContract{
		Email:       req.Email,
		AgreementID: req.ID,
		UserName:    req.UserName,
		FloorNo:     req.FloorNo,
		BlockName:   req.BlockName,
		ApartmentNo: req.ApartmentNo,
		Rent:        req.Rent,
		Details:     req.Details,
	}
}
