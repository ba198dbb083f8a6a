package models

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors a client or staff profile known to the identity provider.
type User struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email      string    `gorm:"type:text;not null;uniqueIndex"`
	Name       string    `gorm:"column:name;not null"`
	CPF        *string   `gorm:"column:cpf"`
	Phone      *string   `gorm:"column:phone"`
	Address    *string   `gorm:"column:address"`
	SystemRole *string   `gorm:"column:system_role"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
