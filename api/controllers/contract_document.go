package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lumenfoto/studio-backend/api/middleware"
	"github.com/lumenfoto/studio-backend/api/responses"
	"github.com/lumenfoto/studio-backend/api/validators"
	"github.com/lumenfoto/studio-backend/internal/contracts"
	"github.com/lumenfoto/studio-backend/internal/documents"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
)

// ContractFinder loads one contract owned by a client.
type ContractFinder interface {
	GetForClient(ctx context.Context, email string, id uuid.UUID) (contracts.Contract, error)
}

// DocumentGenerator renders a contract into a downloadable file.
type DocumentGenerator interface {
	Generate(ctx context.Context, c contracts.Contract) (*documents.File, error)
}

// ContractDocument sends the contract PDF as an attachment.
func ContractDocument(finder ContractFinder, generator DocumentGenerator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if finder == nil || generator == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document service unavailable"))
			return
		}
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		id, err := validators.ParseUUIDParam("contractId", chi.URLParam(r, "contractId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contract, err := finder.GetForClient(r.Context(), identity.Email, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := generator.Generate(r.Context(), contract)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteAttachment(w, file.ContentType, file.Name, file.Data)
	}
}
