// Package gui runs a session in a desktop window.
package gui

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"
	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/render"
	"github.com/schack/schack/internal/session"
)

// Window implements ebiten.Game for one session.
type Window struct {
	session *session.Session
	palette render.Palette
	title   string
	done    <-chan struct{}
}

func New(s *session.Session, pal render.Palette, title string) *Window {
	return &Window{
		session: s,
		palette: pal,
		title:   title,
	}
}

// Update forwards left button releases to the session.
func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.session.HandlePointerRelease(float64(x), float64(y))
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	render.Frame(&canvas{dst: screen, pal: w.palette}, w.session, w.palette)
}

// Layout keeps the logical screen at the fixed board geometry; ebiten scales
// it to the real window.
func (w *Window) Layout(_, _ int) (int, int) {
	return board.ScreenWidth, board.ScreenHeight
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (w *Window) Run(ctx context.Context) error {
	w.done = ctx.Done()
	ebiten.SetWindowSize(board.ScreenWidth, board.ScreenHeight)
	ebiten.SetWindowTitle(w.title)

	log.Info().Str("title", w.title).Msg("Opening window")
	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	log.Info().Msg("Window closed")
	return nil
}
