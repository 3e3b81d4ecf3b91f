// Package term runs a session inside a terminal. Mouse clicks are translated
// to the pixel geometry of the window so the session cannot tell the two
// front ends apart.
package term

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/schack/schack/internal/render"
	"github.com/schack/schack/internal/session"
)

type Terminal struct {
	screen  tcell.Screen
	session *session.Session
	palette render.Palette
	pressed bool
}

// New wraps an initialised screen.
func New(screen tcell.Screen, s *session.Session, pal render.Palette) *Terminal {
	return &Terminal{screen: screen, session: s, palette: pal}
}

// Open creates and initialises the real terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	return screen, nil
}

// Run draws and handles events until Esc, Ctrl-C or ctx is cancelled. The
// screen is finalised on return.
func (t *Terminal) Run(ctx context.Context) error {
	defer t.screen.Fini()

	t.screen.EnableMouse()
	t.screen.HideCursor()

	if w, h := t.screen.Size(); w < Columns || h < Rows {
		log.Warn().Int("width", w).Int("height", h).
			Int("want_width", Columns).Int("want_height", Rows).
			Msg("Terminal smaller than the board, some of it will be cut off")
	}

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	t.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.handle(ev) {
				return nil
			}
			t.draw()
		}
	}
}

// handle reports false when the user asked to quit.
func (t *Terminal) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			log.Debug().Msg("Quit requested")
			return false
		}
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if t.pressed && !down {
			col, row := ev.Position()
			x, y := toPixel(col, row)
			t.session.HandlePointerRelease(x, y)
		}
		t.pressed = down
	}
	return true
}

func (t *Terminal) draw() {
	t.screen.Clear()
	render.Frame(&canvas{screen: t.screen, pal: t.palette}, t.session, t.palette)
	t.screen.Show()
}
