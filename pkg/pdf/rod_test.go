package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenfoto/studio-backend/pkg/config"
)

type pageLog struct {
	content      string
	closed       int
	closeCtxErrs []error
}

type fakePage struct {
	ctx context.Context
	log *pageLog
}

func (p fakePage) SetDocumentContent(html string) error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	p.log.content = html
	return nil
}

func (p fakePage) WaitLoad() error { return p.ctx.Err() }

func (p fakePage) PDF(*proto.PagePrintToPDF) (*rod.StreamReader, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	return nil, errors.New("printing unavailable")
}

func (p fakePage) Close() error {
	p.log.closed++
	err := p.ctx.Err()
	p.log.closeCtxErrs = append(p.log.closeCtxErrs, err)
	return err
}

func fakeRodSurface(ctx context.Context, log *pageLog) *rodSurface {
	return &rodSurface{
		ctx:  ctx,
		bind: func(ctx context.Context) page { return fakePage{ctx: ctx, log: log} },
	}
}

type surfaceFactory struct{ surface Surface }

func (f surfaceFactory) Open(context.Context) (Surface, error) { return f.surface, nil }

func TestRodSurfaceClosesAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	log := &pageLog{}
	surface := fakeRodSurface(ctx, log)
	cancel()

	_, err := NewRenderer(surfaceFactory{surface: surface}, 0).Render(ctx, "<p>hi</p>")
	require.ErrorIs(t, err, context.Canceled)

	require.Equal(t, 1, log.closed)
	assert.NoError(t, log.closeCtxErrs[0])
	assert.Empty(t, log.content)
}

func TestRodSurfaceClosesAfterDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	<-ctx.Done()
	log := &pageLog{}

	err := fakeRodSurface(ctx, log).Close()
	require.NoError(t, err)
	assert.Equal(t, 1, log.closed)
}

func TestRodSurfaceLoadsWithRenderContext(t *testing.T) {
	log := &pageLog{}
	surface := fakeRodSurface(context.Background(), log)

	require.NoError(t, surface.SetContent("<h1>Contrato</h1>"))
	assert.Equal(t, "<h1>Contrato</h1>", log.content)

	_, err := surface.Print()
	require.EqualError(t, err, "printing unavailable")
}

type fakeProcess struct {
	killed, cleaned int
}

func (p *fakeProcess) Kill()    { p.killed++ }
func (p *fakeProcess) Cleanup() { p.cleaned++ }

func TestBrowserKillsLaunchedChromeWhenConnectFails(t *testing.T) {
	launched := &fakeProcess{}
	b := NewBrowser(config.PDFConfig{})
	b.launch = func(config.PDFConfig) (string, process, error) { return "ws://127.0.0.1:9222", launched, nil }
	b.connect = func(context.Context, string) (*rod.Browser, error) { return nil, errors.New("connection refused") }

	_, err := b.Open(context.Background())
	require.ErrorContains(t, err, "connect to chrome")
	assert.Equal(t, 1, launched.killed)
	assert.Equal(t, 1, launched.cleaned)
	assert.Nil(t, b.launcher)
}

func TestBrowserReleasesPreviousChromeBeforeRelaunch(t *testing.T) {
	previous := &fakeProcess{}
	b := NewBrowser(config.PDFConfig{})
	b.launcher = previous
	b.launch = func(config.PDFConfig) (string, process, error) { return "", nil, errors.New("no chrome binary") }

	_, err := b.Open(context.Background())
	require.ErrorContains(t, err, "launch chrome")
	assert.Equal(t, 1, previous.killed)
	assert.Equal(t, 1, previous.cleaned)
	assert.Nil(t, b.launcher)
}

func TestBrowserSkipsLaunchWithControlURL(t *testing.T) {
	b := NewBrowser(config.PDFConfig{ControlURL: "ws://chrome:9222"})
	b.launch = func(config.PDFConfig) (string, process, error) {
		t.Fatal("launch must not run when a control URL is configured")
		return "", nil, nil
	}
	var dialed string
	b.connect = func(_ context.Context, url string) (*rod.Browser, error) {
		dialed = url
		return nil, errors.New("unreachable")
	}

	_, err := b.Open(context.Background())
	require.Error(t, err)
	assert.Equal(t, "ws://chrome:9222", dialed)
}

func TestBrowserShutdownReleasesChrome(t *testing.T) {
	proc := &fakeProcess{}
	b := NewBrowser(config.PDFConfig{})
	b.launcher = proc

	require.NoError(t, b.Shutdown())
	assert.Equal(t, 1, proc.killed)
	assert.Equal(t, 1, proc.cleaned)
}
