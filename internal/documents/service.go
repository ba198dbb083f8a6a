package documents

import (
	"context"
	"time"

	"github.com/lumenfoto/studio-backend/internal/contracts"
	pkgerrors "github.com/lumenfoto/studio-backend/pkg/errors"
	"github.com/lumenfoto/studio-backend/pkg/logger"
	"github.com/lumenfoto/studio-backend/pkg/metrics"
)

const (
	ContentTypePDF = "application/pdf"
	metricKind     = "contract"
)

// Renderer converts an HTML document into file bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// File is a finished download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Service builds contract documents.
type Service struct {
	renderer  Renderer
	formatter *Formatter
	business  Business
	logg      *logger.Logger
	metrics   *metrics.DocumentMetrics
}

// NewService wires the document service. logg and m may be nil.
func NewService(renderer Renderer, formatter *Formatter, business Business, logg *logger.Logger, m *metrics.DocumentMetrics) (*Service, error) {
	if renderer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "document renderer required")
	}
	if formatter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "document formatter required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{renderer: renderer, formatter: formatter, business: business, logg: logg, metrics: m}, nil
}

// Generate assembles and renders the contract document. Every failure maps to
// DOCUMENT_RENDER_FAILED and no partial file is returned.
func (s *Service) Generate(ctx context.Context, c contracts.Contract) (*File, error) {
	start := time.Now()
	ctx = s.logg.WithField(ctx, "contract_id", c.ID.String())

	html, err := Assemble(s.formatter, s.business, c)
	if err != nil {
		return nil, s.fail(ctx, start, err, "assemble contract document")
	}

	data, err := s.renderer.Render(ctx, html)
	if err != nil {
		return nil, s.fail(ctx, start, err, "render contract document")
	}

	s.metrics.ObserveDuration(metricKind, time.Since(start))
	s.metrics.IncSuccess(metricKind)
	s.logg.Info(s.logg.WithField(ctx, "bytes", len(data)), "contract document rendered")

	return &File{
		Name:        Filename(s.business.Slug, c.ClientName),
		ContentType: ContentTypePDF,
		Data:        data,
	}, nil
}

func (s *Service) fail(ctx context.Context, start time.Time, err error, msg string) error {
	s.metrics.ObserveDuration(metricKind, time.Since(start))
	s.metrics.IncFailure(metricKind)
	s.logg.Error(ctx, msg, err)
	return pkgerrors.Wrap(pkgerrors.CodeRender, err, msg)
}
