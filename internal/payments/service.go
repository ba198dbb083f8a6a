package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/lumenfoto/studio-backend/pkg/db/models"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/mercadopago"
)

// ErrNotConfigured means neither configuration nor the request carried a provider token.
var ErrNotConfigured = errors.New("Mercado Pago access token not configured")

// Provider creates checkout preferences.
type Provider interface {
	CreatePreference(ctx context.Context, accessToken string, pref mercadopago.Preference) (*mercadopago.PreferenceResult, error)
}

// Service records a booking intent and opens a checkout preference for it.
type Service struct {
	repo     Repository
	provider Provider
	token    string
	logg     *logger.Logger
}

// NewService wires the payments service. configuredToken may be empty; requests
// must then carry their own token.
func NewService(repo Repository, provider Provider, configuredToken string, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "bookings repository required")
	}
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment provider required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{repo: repo, provider: provider, token: strings.TrimSpace(configuredToken), logg: logg}, nil
}

// CreatePreference persists the booking as pending, asks the provider for a
// preference and records the outcome on the booking. The configured token wins
// over a request token; with neither the call fails with CONFIGURATION_ERROR.
func (s *Service) CreatePreference(ctx context.Context, in CreatePreferenceInput) (*mercadopago.PreferenceResult, error) {
	token := s.token
	if token == "" {
		token = strings.TrimSpace(in.AccessToken)
	}
	if token == "" {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConfiguration, ErrNotConfigured, ErrNotConfigured.Error())
	}
	if len(in.Preference.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "preference must contain at least one item")
	}

	booking := in.BookingData.toModel()
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record booking")
	}
	ctx = s.logg.WithField(ctx, "booking_id", booking.ID.String())

	pref := withBookingReference(in.Preference, booking)
	result, err := s.provider.CreatePreference(ctx, token, pref)
	if err != nil {
		if markErr := s.repo.MarkPreferenceFailed(ctx, booking.ID, failureReason(err)); markErr != nil {
			s.logg.Error(ctx, "failed to mark booking preference failure", markErr)
		}
		return nil, err
	}

	if err := s.repo.MarkPreferenceCreated(ctx, booking.ID, result.ID); err != nil {
		// The preference exists upstream; the payer can still proceed.
		s.logg.Error(s.logg.WithField(ctx, "preference_id", result.ID), "failed to record preference on booking", err)
	}
	s.logg.Info(s.logg.WithField(ctx, "preference_id", result.ID), "payment preference created")
	return result, nil
}

func withBookingReference(pref mercadopago.Preference, booking *models.Booking) mercadopago.Preference {
	if strings.TrimSpace(pref.ExternalReference) == "" {
		pref.ExternalReference = booking.ID.String()
	}
	metadata := make(map[string]any, len(pref.Metadata)+1)
	for k, v := range pref.Metadata {
		metadata[k] = v
	}
	metadata["booking_id"] = booking.ID.String()
	pref.Metadata = metadata
	return pref
}

// failureReason prefers the provider's own message over the wrapping layers.
func failureReason(err error) string {
	var apiErr *mercadopago.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	for inner := errors.Unwrap(err); inner != nil; inner = errors.Unwrap(inner) {
		err = inner
	}
	return err.Error()
}
