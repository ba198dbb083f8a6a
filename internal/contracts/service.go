package contracts

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/pkg/db"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
)

// Service exposes contract reads scoped to one client.
type Service interface {
	ListForClient(ctx context.Context, email string) ([]Contract, error)
	GetForClient(ctx context.Context, email string, id uuid.UUID) (Contract, error)
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	timeout time.Duration
}

// NewService wires the contracts service. A zero timeout leaves queries bounded
// only by the caller's context.
func NewService(repo Repository, logg *logger.Logger, timeout time.Duration) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "contracts repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg, timeout: timeout}, nil
}

// ListForClient loads every contract filed under email, newest first. An empty
// email is queried as-is and matches nothing. Rows that fail validation are
// skipped and logged rather than returned half-populated.
func (s *service) ListForClient(ctx context.Context, email string) ([]Contract, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	rows, err := s.repo.ListByClientEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if db.IsTimeout(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts timed out").
				WithDetails(map[string]any{"timeout": s.timeout.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contracts")
	}

	out := make([]Contract, 0, len(rows))
	for _, row := range rows {
		contract, err := FromModel(row)
		if err != nil {
			warnCtx := s.logg.WithFields(ctx, map[string]any{
				"contract_id": row.ID.String(),
				"reason":      err.Error(),
			})
			s.logg.Warn(warnCtx, "skipping malformed contract row")
			continue
		}
		out = append(out, contract)
	}
	return out, nil
}

// GetForClient loads one contract, hiding contracts that belong to someone else.
func (s *service) GetForClient(ctx context.Context, email string, id uuid.UUID) (Contract, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return Contract{}, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
		}
		return Contract{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contract")
	}
	// Same exact-match rule as ListForClient.
	if email = strings.TrimSpace(email); email == "" || row.ClientEmail != email {
		return Contract{}, pkgerrors.New(pkgerrors.CodeNotFound, "contract not found")
	}

	contract, err := FromModel(*row)
	if err != nil {
		return Contract{}, pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "contract record is malformed")
	}
	return contract, nil
}

func (s *service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
