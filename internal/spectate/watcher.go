package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	initialReconnectDelay  = 1 * time.Second
	maxReconnectDelay      = 1 * time.Minute
	reconnectBackoffFactor = 2
	dialTimeout            = 10 * time.Second
)

// SnapshotHandler is called for every snapshot a Watcher receives.
type SnapshotHandler func(Snapshot) error

// Watcher follows a spectator feed, reconnecting with exponential backoff
// whenever the connection drops.
type Watcher struct {
	url            string
	handler        SnapshotHandler
	logger         zerolog.Logger
	dialer         *websocket.Dialer
	reconnectDelay time.Duration

	mu        sync.RWMutex
	connected bool
}

type WatcherOption func(*Watcher)

func WithLogger(logger zerolog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

func WithDialer(d *websocket.Dialer) WatcherOption {
	return func(w *Watcher) {
		w.dialer = d
	}
}

// WithInitialReconnectDelay sets the first backoff step.
func WithInitialReconnectDelay(delay time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.reconnectDelay = delay
	}
}

// NewWatcher follows the feed at url, e.g. ws://localhost:8090/ws.
func NewWatcher(url string, handler SnapshotHandler, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		url:            url,
		handler:        handler,
		logger:         zerolog.Nop(),
		dialer:         websocket.DefaultDialer,
		reconnectDelay: initialReconnectDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Watcher) IsConnected() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.connected
}

// Run follows the feed until ctx is cancelled or the handler returns an
// error.
func (w *Watcher) Run(ctx context.Context) error {
	initial := w.reconnectDelay
	delay := initial

	for {
		conn, err := w.connect(ctx)
		if err == nil {
			delay = initial
			err = w.listen(ctx, conn)
			var herr handlerError
			if errors.As(err, &herr) {
				return herr.err
			}
		}
		if ctx.Err() != nil {
			return nil
		}

		w.logger.Warn().Err(err).Dur("retry_in", delay).Msg("Spectator feed lost")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		delay *= reconnectBackoffFactor
		if delay > maxReconnectDelay {
			delay = maxReconnectDelay
		}
	}
}

func (w *Watcher) connect(ctx context.Context) (*websocket.Conn, error) {
	w.logger.Info().Str("url", w.url).Msg("Connecting to spectator feed")

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	headers := http.Header{}
	headers.Set("User-Agent", "schack-watch")

	conn, _, err := w.dialer.DialContext(dialCtx, w.url, headers)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	return conn, nil
}

func (w *Watcher) listen(ctx context.Context, conn *websocket.Conn) error {
	w.setConnected(true)
	defer w.setConnected(false)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read error: %w", err)
		}

		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			w.logger.Error().Err(err).Msg("Failed to decode snapshot")
			continue
		}
		if err := w.handler(snap); err != nil {
			return handlerError{err}
		}
	}
}

func (w *Watcher) setConnected(v bool) {
	w.mu.Lock()
	w.connected = v
	w.mu.Unlock()
}

type handlerError struct{ err error }

func (e handlerError) Error() string { return e.err.Error() }
