package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/config"
	"github.com/schack/schack/internal/gui"
	"github.com/schack/schack/internal/render"
	"github.com/schack/schack/internal/session"
	"github.com/schack/schack/internal/spectate"
	"github.com/schack/schack/internal/term"
)

func main() {
	var (
		showHelp   bool
		terminal   bool
		configPath string
		watchURL   string
	)
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&showHelp, "h", false, "Show help information")
	flag.BoolVar(&terminal, "terminal", false, "Play in the terminal instead of a window")
	flag.StringVar(&configPath, "config", "", "Path to a config file")
	flag.StringVar(&watchURL, "watch", "", "Follow another player's game at a spectator WebSocket URL")
	flag.Parse()

	if showHelp {
		showHelpMessage()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schack: %v\n", err)
		os.Exit(1)
	}
	if terminal {
		cfg.App.Frontend = config.FrontendTerminal
	}

	closeLog, err := setupLogging(cfg.Logging, cfg.App.Frontend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "schack: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if watchURL != "" {
		err = watch(watchURL)
	} else {
		err = run(cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("Exiting")
		closeLog()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pal, err := render.PaletteFromTheme(render.Theme{
		Light:     cfg.Theme.Light,
		Dark:      cfg.Theme.Dark,
		Highlight: cfg.Theme.Highlight,
		WhiteTurn: cfg.Theme.WhiteTurn,
		BlackTurn: cfg.Theme.BlackTurn,
	})
	if err != nil {
		return err
	}

	var opts []session.Option
	var hub *spectate.Hub
	if cfg.Spectator.Enabled {
		hub = spectate.NewHub()
		opts = append(opts, session.WithObserver(hub.Publish))
	}

	sess := session.New(newGame(cfg.Game.StartFEN), opts...)
	log.Info().Str("game", sess.GameID()).Str("frontend", cfg.App.Frontend).Msg("Starting")

	if hub != nil {
		hub.Publish(sess.Current())
		srv := spectate.NewServer(cfg.Spectator.Host, cfg.Spectator.Port, hub)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Error().Err(err).Str("addr", srv.Addr()).Msg("Spectator server stopped")
			}
		}()
	}

	if cfg.App.Frontend == config.FrontendTerminal {
		screen, err := term.Open()
		if err != nil {
			return err
		}
		return term.New(screen, sess, pal).Run(ctx)
	}
	return gui.New(sess, pal, cfg.App.Title).Run(ctx)
}

// watch prints every snapshot of a remote game until interrupted.
func watch(url string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := spectate.NewWatcher(url, func(snap spectate.Snapshot) error {
		line := fmt.Sprintf("[%s] %s, %s to move", snap.GameID, snap.State, snap.Turn)
		if snap.LastMove != nil {
			line = fmt.Sprintf("[%s] %s, %s to move", snap.GameID, snap.LastMove.SAN, snap.Turn)
		}
		if snap.Captured != nil {
			line += fmt.Sprintf(" (took %s)", snap.Captured)
		}
		fmt.Println(line)
		return nil
	}, spectate.WithLogger(log.Logger))

	return w.Run(ctx)
}

// newGame returns the engine factory used for the first game and every
// reset. fen has already been validated by the config.
func newGame(fen string) func() session.Rules {
	return func() session.Rules {
		if fen == "" {
			return chess.NewEngine()
		}
		engine, err := chess.NewEngineFromFEN(fen)
		if err != nil {
			log.Error().Err(err).Str("fen", fen).Msg("Invalid start position, using the standard one")
			return chess.NewEngine()
		}
		return engine
	}
}

// setupLogging points the global logger at stderr for the window and at the
// configured file, or nowhere, for the terminal, which owns the screen.
func setupLogging(cfg config.LoggingConfig, frontend string) (func(), error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.File != "":
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = func() { _ = f.Close() }
	case frontend == config.FrontendTerminal:
		out = io.Discard
	case cfg.Pretty:
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

func showHelpMessage() {
	fmt.Println(`Schack

DESCRIPTION:
    Two-player chess on one screen. Click a piece to see where it can go,
    click a highlighted square to move it. Pawns reaching the last rank
    ask for a promotion piece below the board. When the game is over,
    click below the board to start a new one.

USAGE:
    schack [OPTIONS]

OPTIONS:
    -h, --help        Show this help message
    -terminal         Play in the terminal (mouse required)
    -config PATH      Read configuration from PATH
    -watch URL        Follow a game from its spectator feed instead of playing

CONFIGURATION:
    Read from config.yaml in the current directory or ./config. Every key
    can be overridden with a SCHACK_ environment variable, for example
    SCHACK_SPECTATOR_ENABLED=true.

    Example config.yaml:
        app:
          frontend: window      # window or terminal
          title: Schack
        game:
          start_fen: ""         # empty for the standard position
        theme:
          light: "#464646"
          dark: "#1e1e1e"
        spectator:
          enabled: true
          host: localhost
          port: 8090
        logging:
          level: info
          file: schack.log

SPECTATOR ENDPOINTS:
    GET /api/health    - Health check and spectator count
    GET /api/game      - Current game snapshot
    GET /ws            - Live snapshots over WebSocket

CONTROLS:
    Left click         Select, move, choose promotion, start a new game
    Esc, Ctrl-C        Quit (terminal)

EXAMPLES:
    # Play in a window
    schack

    # Play in the terminal and log to a file
    SCHACK_LOGGING_FILE=schack.log schack -terminal

    # Watch a game from another machine
    schack -watch ws://192.168.1.20:8090/ws`)
}
