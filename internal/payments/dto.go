package payments

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	"github.com/lumenfoto/studio-backend/pkg/mercadopago"
	"github.com/lumenfoto/studio-backend/pkg/money"
)

// BookingData is the booking form submitted with the checkout.
type BookingData struct {
	ClientName    string          `json:"clientName" validate:"required"`
	ClientEmail   string          `json:"clientEmail" validate:"required,email"`
	ClientPhone   string          `json:"clientPhone,omitempty"`
	EventType     string          `json:"eventType,omitempty"`
	EventDate     string          `json:"eventDate,omitempty"`
	EventTime     string          `json:"eventTime,omitempty"`
	EventLocation string          `json:"eventLocation,omitempty"`
	PackageName   string          `json:"packageName,omitempty"`
	Total         decimal.Decimal `json:"total"`
}

// CreatePreferenceInput is the public payment endpoint body.
type CreatePreferenceInput struct {
	Preference  mercadopago.Preference `json:"preference" validate:"required"`
	BookingData BookingData            `json:"bookingData" validate:"required"`
	AccessToken string                 `json:"accessToken,omitempty"`
}

func (b BookingData) toModel() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		ClientName:    strings.TrimSpace(b.ClientName),
		ClientEmail:   strings.ToLower(strings.TrimSpace(b.ClientEmail)),
		ClientPhone:   optional(b.ClientPhone),
		EventType:     optional(b.EventType),
		EventDate:     optional(b.EventDate),
		EventTime:     optional(b.EventTime),
		EventLocation: optional(b.EventLocation),
		PackageName:   optional(b.PackageName),
		TotalCents:    int64(money.FromDecimal(b.Total)),
		Status:        enums.BookingStatusPending,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
