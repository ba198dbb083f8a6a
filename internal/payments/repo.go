package payments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
)

// Repository persists booking intents.
type Repository interface {
	Create(ctx context.Context, booking *models.Booking) error
	MarkPreferenceCreated(ctx context.Context, id uuid.UUID, preferenceID string) error
	MarkPreferenceFailed(ctx context.Context, id uuid.UUID, reason string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bookings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) MarkPreferenceCreated(ctx context.Context, id uuid.UUID, preferenceID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        enums.BookingStatusPreferenceCreated,
			"preference_id": preferenceID,
		}).Error
}

func (r *repository) MarkPreferenceFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":         enums.BookingStatusPreferenceFailed,
			"failure_reason": reason,
		}).Error
}
