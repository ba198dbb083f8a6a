package contracts

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	"github.com/lumenfoto/studio-backend/pkg/money"
)

// Contract is the validated, typed view of a stored contract row.
type Contract struct {
	ID               uuid.UUID           `json:"id"`
	ClientEmail      string              `json:"client_email"`
	ClientName       string              `json:"client_name"`
	ClientCPF        string              `json:"client_cpf,omitempty"`
	ClientPhone      string              `json:"client_phone,omitempty"`
	ClientAddress    string              `json:"client_address,omitempty"`
	EventType        string              `json:"event_type"`
	EventDate        time.Time           `json:"event_date"`
	EventTime        string              `json:"event_time,omitempty"`
	EventLocation    string              `json:"event_location,omitempty"`
	ContractDate     time.Time           `json:"contract_date"`
	PaymentMethod    enums.PaymentMethod `json:"payment_method"`
	TotalAmount      money.Cents         `json:"total_amount_cents"`
	TravelFee        money.Cents         `json:"travel_fee_cents"`
	DepositPaid      bool                `json:"deposit_paid"`
	FinalPaymentPaid bool                `json:"final_payment_paid"`
	EventCompleted   bool                `json:"event_completed"`
	CreatedAt        time.Time           `json:"created_at"`
}

// HasTravelFee reports whether a travel fee line applies.
func (c Contract) HasTravelFee() bool {
	return c.TravelFee > 0
}

// FromModel validates a stored row. Unknown payment methods and negative amounts
// are rejected; absent optional text fields become empty strings.
func FromModel(row models.Contract) (Contract, error) {
	method, err := enums.ParsePaymentMethod(strings.ToLower(strings.TrimSpace(row.PaymentMethod)))
	if err != nil {
		return Contract{}, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	total := money.Cents(row.TotalAmountCents)
	if total.IsNegative() {
		return Contract{}, fmt.Errorf("contract %s: negative total amount %d", row.ID, row.TotalAmountCents)
	}
	fee := money.Cents(row.TravelFeeCents)
	if fee.IsNegative() {
		return Contract{}, fmt.Errorf("contract %s: negative travel fee %d", row.ID, row.TravelFeeCents)
	}

	return Contract{
		ID:               row.ID,
		ClientEmail:      row.ClientEmail,
		ClientName:       row.ClientName,
		ClientCPF:        deref(row.ClientCPF),
		ClientPhone:      deref(row.ClientPhone),
		ClientAddress:    deref(row.ClientAddress),
		EventType:        row.EventType,
		EventDate:        row.EventDate,
		EventTime:        deref(row.EventTime),
		EventLocation:    deref(row.EventLocation),
		ContractDate:     row.ContractDate,
		PaymentMethod:    method,
		TotalAmount:      total,
		TravelFee:        fee,
		DepositPaid:      row.DepositPaid,
		FinalPaymentPaid: row.FinalPaymentPaid,
		EventCompleted:   row.EventCompleted,
		CreatedAt:        row.CreatedAt,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
