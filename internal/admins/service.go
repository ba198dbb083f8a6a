package admins

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/db"
	"github.com/lumenfoto/studio-backend/pkg/db/models"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
)

// UserStore is the persistence surface the claim needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetSystemRole(ctx context.Context, id uuid.UUID, role enums.SystemRole) error
}

// Service grants the admin role to the studio owner account named in configuration.
type Service struct {
	users  UserStore
	target string
	logg   *logger.Logger
}

// NewService wires the admin-claim service.
func NewService(users UserStore, targetEmail string, logg *logger.Logger) (*Service, error) {
	if users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users store required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{users: users, target: strings.TrimSpace(targetEmail), logg: logg}, nil
}

// Assign sets the admin role on the configured account and returns a confirmation message.
// Repeating the claim is harmless.
func (s *Service) Assign(ctx context.Context) (string, error) {
	if s.target == "" {
		return "", pkgerrors.New(pkgerrors.CodeConfiguration, "admin account is not configured")
	}

	user, err := s.users.FindByEmail(ctx, s.target)
	if err != nil {
		if db.IsNotFound(err) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "admin account not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load admin account")
	}

	if err := s.users.SetSystemRole(ctx, user.ID, enums.SystemRoleAdmin); err != nil {
		if db.IsNotFound(err) {
			// deleted between the lookup and the update
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "admin account not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign admin role")
	}

	ctx = s.logg.WithClientEmail(s.logg.WithField(ctx, "target_user_id", user.ID.String()), s.target)
	s.logg.Info(ctx, "admin claim assigned")
	return fmt.Sprintf("admin claim assigned to %s", s.target), nil
}
