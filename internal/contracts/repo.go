package contracts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
)

// Repository reads contract rows.
type Repository interface {
	ListByClientEmail(ctx context.Context, email string) ([]models.Contract, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a contracts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListByClientEmail returns the client's contracts, most recent first.
func (r *repository) ListByClientEmail(ctx context.Context, email string) ([]models.Contract, error) {
	var rows []models.Contract
	err := r.db.WithContext(ctx).
		Where("client_email = ?", email).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var row models.Contract
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
