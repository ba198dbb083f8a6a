package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/enums"
)

// Booking records a checkout intent created from the public booking flow.
type Booking struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientName    string              `gorm:"column:client_name;not null"`
	ClientEmail   string              `gorm:"column:client_email;not null"`
	ClientPhone   *string             `gorm:"column:client_phone"`
	EventType     *string             `gorm:"column:event_type"`
	EventDate     *string             `gorm:"column:event_date"`
	EventTime     *string             `gorm:"column:event_time"`
	EventLocation *string             `gorm:"column:event_location"`
	PackageName   *string             `gorm:"column:package_name"`
	TotalCents    int64               `gorm:"column:total_cents;not null;default:0"`
	Status        enums.BookingStatus `gorm:"column:status;not null;default:'pending'"`
	PreferenceID  *string             `gorm:"column:preference_id"`
	FailureReason *string             `gorm:"column:failure_reason"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Booking) TableName() string { return "bookings" }
