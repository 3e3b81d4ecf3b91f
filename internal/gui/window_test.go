package gui

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/render"
	"github.com/schack/schack/internal/session"
	"github.com/stretchr/testify/assert"
)

var _ render.Canvas = (*canvas)(nil)
var _ ebiten.Game = (*Window)(nil)

func newWindow() *Window {
	s := session.New(func() session.Rules { return chess.NewEngine() })
	return New(s, render.DefaultPalette, "test")
}

func TestLayoutIsFixed(t *testing.T) {
	w := newWindow()

	for _, size := range [][2]int{{720, 870}, {1440, 1740}, {300, 200}} {
		width, height := w.Layout(size[0], size[1])
		assert.Equal(t, 720, width)
		assert.Equal(t, 870, height)
	}
}

func TestUpdateStopsWhenCancelled(t *testing.T) {
	w := newWindow()
	ctx, cancel := context.WithCancel(context.Background())
	w.done = ctx.Done()
	cancel()
	assert.ErrorIs(t, w.Update(), ebiten.Termination)
}

func TestWhiteLettersGetDarkBackdrop(t *testing.T) {
	c := &canvas{pal: render.DefaultPalette}

	backdrop, ok := c.letterBackdrop(chess.White)
	assert.True(t, ok)
	assert.Equal(t, render.DefaultPalette.BlackPiece, backdrop)

	_, ok = c.letterBackdrop(chess.Black)
	assert.False(t, ok)
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0.0, textWidth(""))
	assert.Equal(t, 78.0, textWidth("White to move"))
}
