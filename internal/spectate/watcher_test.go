package spectate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/schack/schack/internal/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEnough = errors.New("enough")

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestWatcherFollowsHub(t *testing.T) {
	hub, srv := startHub(t)
	s := newSession(hub)
	hub.Publish(s.Current())
	require.Eventually(t, func() bool { return len(hub.broadcast) == 0 }, time.Second, 10*time.Millisecond)

	var got []Snapshot
	w := NewWatcher(wsURL(srv, "/ws"), func(snap Snapshot) error {
		got = append(got, snap)
		if len(got) == 5 {
			return errEnough
		}
		return nil
	})

	errc := make(chan error, 1)
	go func() { errc <- w.Run(context.Background()) }()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	play(s, "e2e4", "d7d5", "e4d5", "d8d5")

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, errEnough)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
	require.Len(t, got, 5)
	assert.Equal(t, "start", got[0].Type)
	assert.Equal(t, "move", got[1].Type)
	assert.Equal(t, s.GameID(), got[1].GameID)

	// exd5 and Qxd5 both carry captures
	require.NotNil(t, got[3].Captured)
	assert.Equal(t, chess.Piece{Kind: chess.Pawn, Side: chess.Black}, *got[3].Captured)
	require.NotNil(t, got[4].Captured)
	assert.Equal(t, chess.Piece{Kind: chess.Pawn, Side: chess.White}, *got[4].Captured)
	assert.Len(t, got[4].Captures.White, 1)
	assert.Len(t, got[4].Captures.Black, 1)
}

func TestWatcherReconnects(t *testing.T) {
	var connections int32
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		atomic.AddInt32(&connections, 1)
		_ = conn.WriteJSON(Snapshot{GameID: "g1", Type: "start"})
		conn.Close()
	}))
	defer srv.Close()

	var seen int32
	w := NewWatcher(wsURL(srv, ""), func(Snapshot) error {
		if atomic.AddInt32(&seen, 1) == 3 {
			return errEnough
		}
		return nil
	}, WithInitialReconnectDelay(5*time.Millisecond))

	err := w.Run(context.Background())

	assert.ErrorIs(t, err, errEnough)
	assert.Equal(t, int32(3), atomic.LoadInt32(&connections))
	assert.False(t, w.IsConnected())
}

func TestWatcherStopsOnCancel(t *testing.T) {
	// nothing listens here, so the watcher sits in its backoff loop
	w := NewWatcher("ws://127.0.0.1:1/ws", func(Snapshot) error { return nil },
		WithInitialReconnectDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
