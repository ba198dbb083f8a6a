package controllers

import (
	"context"
	"net/http"

	"github.com/lumenfoto/studio-backend/api/responses"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/types"
)

// AdminClaimer grants the admin role to the configured studio account.
type AdminClaimer interface {
	Assign(ctx context.Context) (string, error)
}

func AdminClaimAssign(svc AdminClaimer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin claim service unavailable"))
			return
		}
		message, err := svc.Assign(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, types.MessageResponse{Message: message})
	}
}
