package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract is the stored engagement record. It is written by the studio's admin
// tooling and only read by this service.
type Contract struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientEmail      string    `gorm:"column:client_email;not null;index"`
	ClientName       string    `gorm:"column:client_name;not null"`
	ClientCPF        *string   `gorm:"column:client_cpf"`
	ClientPhone      *string   `gorm:"column:client_phone"`
	ClientAddress    *string   `gorm:"column:client_address"`
	EventType        string    `gorm:"column:event_type;not null"`
	EventDate        time.Time `gorm:"column:event_date;type:date;not null"`
	EventTime        *string   `gorm:"column:event_time"`
	EventLocation    *string   `gorm:"column:event_location"`
	ContractDate     time.Time `gorm:"column:contract_date;type:date;not null"`
	PaymentMethod    string    `gorm:"column:payment_method;not null"`
	TotalAmountCents int64     `gorm:"column:total_amount_cents;not null"`
	TravelFeeCents   int64     `gorm:"column:travel_fee_cents;not null;default:0"`
	DepositPaid      bool      `gorm:"column:deposit_paid;not null;default:false"`
	FinalPaymentPaid bool      `gorm:"column:final_payment_paid;not null;default:false"`
	EventCompleted   bool      `gorm:"column:event_completed;not null;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Contract) TableName() string { return "contracts" }
