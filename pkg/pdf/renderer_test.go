package pdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	content    string
	out        []byte
	setErr     error
	printErr   error
	closeErr   error
	panicPrint bool
	closed     int
}

func (f *fakeSurface) SetContent(html string) error {
	f.content = html
	return f.setErr
}

func (f *fakeSurface) Print() ([]byte, error) {
	if f.panicPrint {
		panic("printer crashed")
	}
	return f.out, f.printErr
}

func (f *fakeSurface) Close() error {
	f.closed++
	return f.closeErr
}

type fakeFactory struct {
	surface *fakeSurface
	err     error
	opened  int
}

func (f *fakeFactory) Open(context.Context) (Surface, error) {
	f.opened++
	if f.err != nil {
		return nil, f.err
	}
	return f.surface, nil
}

func TestRenderClosesSurfaceOnSuccess(t *testing.T) {
	surface := &fakeSurface{out: []byte("%PDF-1.4")}
	r := NewRenderer(&fakeFactory{surface: surface}, time.Second)

	data, err := r.Render(context.Background(), "<p>hi</p>")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "<p>hi</p>", surface.content)
	assert.Equal(t, 1, surface.closed)
}

func TestRenderClosesSurfaceOnFailure(t *testing.T) {
	cases := map[string]*fakeSurface{
		"set content": {setErr: errors.New("bad html")},
		"print":       {printErr: errors.New("printer offline")},
		"empty":       {},
	}
	for name, surface := range cases {
		t.Run(name, func(t *testing.T) {
			r := NewRenderer(&fakeFactory{surface: surface}, 0)
			data, err := r.Render(context.Background(), "<p>hi</p>")
			require.Error(t, err)
			assert.Nil(t, data)
			assert.Equal(t, 1, surface.closed)
		})
	}
}

func TestRenderClosesSurfaceOnPanic(t *testing.T) {
	surface := &fakeSurface{panicPrint: true}
	r := NewRenderer(&fakeFactory{surface: surface}, 0)

	assert.Panics(t, func() {
		_, _ = r.Render(context.Background(), "<p>hi</p>")
	})
	assert.Equal(t, 1, surface.closed)
}

func TestRenderCombinesCloseError(t *testing.T) {
	surface := &fakeSurface{printErr: errors.New("printer offline"), closeErr: errors.New("target gone")}
	r := NewRenderer(&fakeFactory{surface: surface}, 0)

	_, err := r.Render(context.Background(), "<p>hi</p>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "printer offline")
	assert.Contains(t, err.Error(), "target gone")
}

func TestRenderDropsOutputWhenCloseFails(t *testing.T) {
	surface := &fakeSurface{out: []byte("%PDF"), closeErr: errors.New("target gone")}
	r := NewRenderer(&fakeFactory{surface: surface}, 0)

	data, err := r.Render(context.Background(), "<p>hi</p>")
	require.Error(t, err)
	assert.Nil(t, data)
}

func TestRenderOpenFailure(t *testing.T) {
	factory := &fakeFactory{err: errors.New("no browser")}
	_, err := NewRenderer(factory, 0).Render(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, 1, factory.opened)
}

func TestRenderHonorsCancelledContext(t *testing.T) {
	surface := &fakeSurface{out: []byte("%PDF")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer(&fakeFactory{surface: surface}, 0).Render(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, surface.closed)
}

func TestNilRenderer(t *testing.T) {
	var r *Renderer
	_, err := r.Render(context.Background(), "x")
	require.Error(t, err)
}
