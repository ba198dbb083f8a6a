package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// Surface is a temporary page that holds one document while it is printed.
type Surface interface {
	SetContent(html string) error
	Print() ([]byte, error)
	Close() error
}

// SurfaceFactory opens rendering surfaces.
type SurfaceFactory interface {
	Open(ctx context.Context) (Surface, error)
}

// ErrEmptyDocument is returned when the printer produced no bytes.
var ErrEmptyDocument = errors.New("renderer produced an empty document")

// Renderer turns HTML into PDF bytes. Every surface it opens is closed before
// Render returns, including when printing fails or panics.
type Renderer struct {
	factory SurfaceFactory
	timeout time.Duration
}

// NewRenderer builds a renderer; a zero timeout relies on the caller's context.
func NewRenderer(factory SurfaceFactory, timeout time.Duration) *Renderer {
	return &Renderer{factory: factory, timeout: timeout}
}

// Render prints html to PDF. On any error no bytes are returned.
func (r *Renderer) Render(ctx context.Context, html string) (data []byte, err error) {
	if r == nil || r.factory == nil {
		return nil, errors.New("pdf renderer not configured")
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	surface, err := r.factory.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open render surface: %w", err)
	}
	defer func() {
		if closeErr := surface.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close render surface: %w", closeErr))
		}
		if err != nil {
			data = nil
		}
	}()

	if err := surface.SetContent(html); err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	out, err := surface.Print()
	if err != nil {
		return nil, fmt.Errorf("print document: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("render aborted: %w", err)
	}
	return out, nil
}
