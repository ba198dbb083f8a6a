package controllers

import (
	"net/http"

	"github.com/lumenfoto/studio-backend/api/middleware"
	"github.com/lumenfoto/studio-backend/api/responses"
	"github.com/lumenfoto/studio-backend/internal/dashboard"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
)

// ContractsList returns the dashboard snapshot of the caller's contracts. Retrieval
// failures surface as an empty list with 200, never as an error response. Each
// request gets its own view, so the stale-load guard only matters for views that
// are kept across loads.
func ContractsList(lister dashboard.ContractLister, logg *logger.Logger, m *metrics.RetrievalMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if lister == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contracts service unavailable"))
			return
		}
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		view := dashboard.NewView(lister, logg, m)
		responses.WriteSuccess(w, view.Load(r.Context(), identity))
	}
}
