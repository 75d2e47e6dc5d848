package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentRecord is the single settlement of an identity. Never mutated.
type PaymentRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Amount        float64   `gorm:"column:amount;not null" json:"amount"`
	ContractID    uuid.UUID `gorm:"type:uuid;column:contract_id;not null;index" json:"contract_id"`
	TransactionID string    `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	Month         string    `gorm:"column:month" json:"month,omitempty"`
	PaidAt        time.Time `gorm:"column:paid_at;not null" json:"paid_at"`
}

func (PaymentRecord) TableName() string { return "payment_record" }

func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}
	return nil
}
