package spectate

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/session"
)

// Snapshot is what spectators receive after every change to the game.
type Snapshot struct {
	GameID    string              `json:"gameId"`
	Type      string              `json:"type"` // "start", "move" or "reset"
	FEN       string              `json:"fen"`
	State     string              `json:"state"`
	Turn      string              `json:"turn"`
	LastMove  *chess.MoveResult   `json:"lastMove,omitempty"`
	Captured  *chess.Piece        `json:"captured,omitempty"`
	Captures  Captures            `json:"captures"`
	Material  chess.MaterialCount `json:"materialCount"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// Captures lists the pieces each side has lost.
type Captures struct {
	White []chess.Piece `json:"white"`
	Black []chess.Piece `json:"black"`
}

// SnapshotOf converts a session event.
func SnapshotOf(ev session.Event) Snapshot {
	snap := Snapshot{
		GameID:   ev.GameID,
		Type:     string(ev.Type),
		FEN:      ev.FEN,
		State:    ev.State.String(),
		Turn:     ev.Turn.String(),
		LastMove: ev.Result,
		Captured: ev.Captured,
		Captures: Captures{
			White: nonNil(ev.WhiteLost),
			Black: nonNil(ev.BlackLost),
		},
		UpdatedAt: time.Now().UTC(),
	}

	engine, err := chess.NewEngineFromFEN(ev.FEN)
	if err != nil {
		log.Error().Err(err).Str("fen", ev.FEN).Msg("Failed to load FEN for material count")
	} else {
		snap.Material = engine.MaterialCount()
	}
	return snap
}

func nonNil(p []chess.Piece) []chess.Piece {
	if p == nil {
		return []chess.Piece{}
	}
	return p
}
