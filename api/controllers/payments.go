package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/lumenfoto/studio-backend/api/responses"
	"github.com/lumenfoto/studio-backend/api/validators"
	"github.com/lumenfoto/studio-backend/internal/payments"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/mercadopago"
)

const preferenceFailedMessage = "failed to create payment preference"

// PreferenceCreator opens checkout preferences for booking requests.
type PreferenceCreator interface {
	CreatePreference(ctx context.Context, in payments.CreatePreferenceInput) (*mercadopago.PreferenceResult, error)
}

// PaymentPreferenceCreate is the public checkout endpoint. The storefront expects the
// bare preference result on success and {"error": ...} on failure.
func PaymentPreferenceCreate(svc PreferenceCreator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WritePlainError(w, http.StatusInternalServerError, "payments service unavailable")
			return
		}

		var body payments.CreatePreferenceInput
		if err := validators.DecodeJSONBody(r, &body, validators.AllowUnknownFields()); err != nil {
			writePaymentError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreatePreference(r.Context(), body)
		if err != nil {
			writePaymentError(r.Context(), logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, result)
	}
}

func writePaymentError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	responses.LogError(ctx, logg, err)

	var apiErr *mercadopago.APIError
	switch {
	case errors.As(err, &apiErr):
		responses.WritePlainError(w, apiErr.StatusCode, apiErr.Message)
	case pkgerrors.IsCode(err, pkgerrors.CodeConfiguration):
		responses.WritePlainError(w, http.StatusInternalServerError, responses.PublicMessage(err))
	case pkgerrors.IsCode(err, pkgerrors.CodeValidation):
		responses.WritePlainError(w, http.StatusBadRequest, responses.PublicMessage(err))
	default:
		responses.WritePlainError(w, http.StatusBadGateway, preferenceFailedMessage)
	}
}
