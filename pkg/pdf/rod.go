package pdf

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"

	"github.com/lumenfoto/studio-backend/pkg/config"
)

// closeTimeout bounds page teardown, which runs even after the render context is done.
const closeTimeout = 5 * time.Second

// process is a locally launched Chrome.
type process interface {
	Kill()
	Cleanup()
}

// Browser is a headless Chrome shared by all renders. It connects to
// ControlURL when set, otherwise launches a local binary on first use.
type Browser struct {
	cfg config.PDFConfig

	launch  func(cfg config.PDFConfig) (string, process, error)
	connect func(ctx context.Context, controlURL string) (*rod.Browser, error)

	mu       sync.Mutex
	browser  *rod.Browser
	launcher process
}

// NewBrowser returns an unconnected browser handle.
func NewBrowser(cfg config.PDFConfig) *Browser {
	return &Browser{cfg: cfg, launch: launchChrome, connect: connectChrome}
}

func launchChrome(cfg config.PDFConfig) (string, process, error) {
	l := launcher.New().Headless(true).Leakless(false)
	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	url, err := l.Launch()
	if err != nil {
		return "", nil, err
	}
	return url, l, nil
}

func connectChrome(ctx context.Context, controlURL string) (*rod.Browser, error) {
	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	return browser, nil
}

// Open creates a blank page. The page itself stays unbound; ctx only scopes
// loading and printing so teardown still reaches Chrome after ctx ends.
func (b *Browser) Open(ctx context.Context) (Surface, error) {
	browser, err := b.ensure(ctx)
	if err != nil {
		return nil, err
	}
	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return newRodSurface(ctx, page), nil
}

func (b *Browser) ensure(ctx context.Context) (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		if _, err := b.browser.Version(); err == nil {
			return b.browser, nil
		}
		_ = b.browser.Close()
		b.browser = nil
	}

	controlURL := b.cfg.ControlURL
	if controlURL == "" {
		b.releaseLauncher()
		url, proc, err := b.launch(b.cfg)
		if err != nil {
			return nil, fmt.Errorf("launch chrome: %w", err)
		}
		b.launcher = proc
		controlURL = url
	}

	// The browser outlives the request that triggered the connection.
	browser, err := b.connect(context.WithoutCancel(ctx), controlURL)
	if err != nil {
		b.releaseLauncher()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}
	b.browser = browser
	return browser, nil
}

// releaseLauncher kills a launched Chrome. Callers hold b.mu.
func (b *Browser) releaseLauncher() {
	if b.launcher == nil {
		return
	}
	b.launcher.Kill()
	b.launcher.Cleanup()
	b.launcher = nil
}

// Shutdown closes the browser and cleans up a launched process.
func (b *Browser) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	b.releaseLauncher()
	return err
}

// page is the part of *rod.Page a surface drives.
type page interface {
	SetDocumentContent(html string) error
	WaitLoad() error
	PDF(req *proto.PagePrintToPDF) (*rod.StreamReader, error)
	Close() error
}

type rodSurface struct {
	ctx  context.Context
	bind func(ctx context.Context) page
}

func newRodSurface(ctx context.Context, p *rod.Page) *rodSurface {
	return &rodSurface{
		ctx:  ctx,
		bind: func(ctx context.Context) page { return p.Context(ctx) },
	}
}

func (s *rodSurface) SetContent(html string) error {
	p := s.bind(s.ctx)
	if err := p.SetDocumentContent(html); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (s *rodSurface) Print() ([]byte, error) {
	stream, err := s.bind(s.ctx).PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, err
	}
	data, readErr := io.ReadAll(stream)
	return data, multierr.Append(readErr, stream.Close())
}

func (s *rodSurface) Close() error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(s.ctx), closeTimeout)
	defer cancel()
	return s.bind(ctx).Close()
}
