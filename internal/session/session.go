// Package session turns pointer releases into chess moves. A Session owns the
// current game, the selection and promotion workflow and the capture ledger;
// the front ends feed it clicks and read it back every frame.
package session

import (
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/chess"
)

// Rules is the rule engine a session plays on. *chess.Engine implements it.
type Rules interface {
	PieceAt(p board.Position) (chess.Piece, bool)
	LegalDestinations(from string) []string
	GameState() chess.GameState
	SideToMove() chess.Side
	CommitMove(from, to string) (*chess.MoveResult, error)
	SetPromotion(name string) error
	FEN() string
}

// Move is a pair of squares in algebraic notation.
type Move struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// IsZero reports whether m is the empty move.
func (m Move) IsZero() bool {
	return m.From == "" && m.To == ""
}

type EventType string

const (
	EventStart EventType = "start"
	EventMove  EventType = "move"
	EventReset EventType = "reset"
)

// Event describes a committed move or a new game.
type Event struct {
	Type      EventType
	GameID    string
	Result    *chess.MoveResult // nil for resets and rejected moves
	Captured  *chess.Piece
	State     chess.GameState
	Turn      chess.Side
	FEN       string
	WhiteLost []chess.Piece
	BlackLost []chess.Piece
}

// Observer is notified synchronously after every commit and reset.
type Observer func(Event)

type Option func(*Session)

// WithObserver registers o for commit and reset events.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// Session is the interaction state of one client window. It is not safe for
// concurrent use; input handling and rendering run on the same goroutine.
type Session struct {
	newRules func() Rules
	rules    Rules
	gameID   string

	previous  board.Square
	selected  bool
	legal     map[board.Square]bool
	promoting bool
	pending   Move
	captures  Ledger

	observers []Observer
}

// New starts a session on a fresh game from newRules. The same factory
// provides the game after every reset.
func New(newRules func() Rules, opts ...Option) *Session {
	s := &Session{
		newRules: newRules,
		rules:    newRules(),
		gameID:   uuid.NewString(),
		legal:    make(map[board.Square]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandlePointerRelease processes a primary button release at pixel (x, y).
func (s *Session) HandlePointerRelease(x, y float64) {
	if board.OnGrid(y) {
		if s.promoting {
			log.Debug().Msg("Ignoring board click while promotion is pending")
			return
		}
		s.clickSquare(board.SquareAt(x, y))
		return
	}

	if s.promoting {
		if board.InPromotionRow(y) {
			s.choosePromotion(x)
		}
		return
	}

	if s.rules.GameState().Over() {
		s.Reset()
	}
}

func (s *Session) clickSquare(sq board.Square) {
	if s.selected && sq == s.previous {
		return
	}

	if s.selected && s.legal[sq] {
		s.play(s.previous, sq)
		return
	}

	s.selectSquare(sq)
}

func (s *Session) selectSquare(sq board.Square) {
	s.clearLegal()
	for _, dest := range s.rules.LegalDestinations(sq.Algebraic()) {
		s.legal[board.FromAlgebraic(dest)] = true
	}
	s.previous = sq
	s.selected = true

	log.Debug().
		Str("square", sq.Algebraic()).
		Int("destinations", len(s.legal)).
		Msg("Selected square")
}

func (s *Session) play(from, to board.Square) {
	if piece, ok := s.rules.PieceAt(from.Position()); ok && reachesLastRank(piece, to) {
		s.promoting = true
		s.pending = Move{From: from.Algebraic(), To: to.Algebraic()}
		log.Debug().
			Str("from", s.pending.From).
			Str("to", s.pending.To).
			Msg("Awaiting promotion choice")
		return
	}

	s.commit(from, to)
}

func reachesLastRank(p chess.Piece, to board.Square) bool {
	if p.Kind != chess.Pawn {
		return false
	}
	return (p.Side == chess.White && to.Row == 0) ||
		(p.Side == chess.Black && to.Row == board.Size-1)
}

func (s *Session) choosePromotion(x float64) {
	name, ok := board.PromotionChoiceAt(x)
	if !ok {
		log.Debug().Float64("x", x).Msg("Promotion click outside the choices")
		return
	}

	if err := s.rules.SetPromotion(name); err != nil {
		log.Warn().Err(err).Str("piece", name).Msg("Engine rejected promotion choice")
	}

	from, to := board.FromAlgebraic(s.pending.From), board.FromAlgebraic(s.pending.To)
	s.pending = Move{}
	s.promoting = false
	s.commit(from, to)
}

// commit records any capture, plays the move and returns to the idle state.
// Engine failures are logged and otherwise ignored: destinations come from
// the engine's own legal move list.
func (s *Session) commit(from, to board.Square) {
	captured, ok := s.capturedBy(from, to)
	if ok {
		s.captures.Record(captured)
	}

	result, err := s.rules.CommitMove(from.Algebraic(), to.Algebraic())
	if err != nil {
		log.Warn().
			Err(err).
			Str("from", from.Algebraic()).
			Str("to", to.Algebraic()).
			Msg("Engine rejected move")
	} else {
		log.Info().
			Str("game", s.gameID).
			Str("san", result.SAN).
			Str("fen", result.FEN).
			Msg("Move played")
	}

	s.clearLegal()
	s.selected = false

	ev := s.event(EventMove)
	ev.Result = result
	if ok {
		ev.Captured = &captured
	}
	s.notify(ev)
}

// capturedBy returns the piece that from-to removes from the board. An en
// passant capture takes the pawn beside the destination, not on it.
func (s *Session) capturedBy(from, to board.Square) (chess.Piece, bool) {
	mover, ok := s.rules.PieceAt(from.Position())
	if !ok {
		return chess.Piece{}, false
	}

	if target, ok := s.rules.PieceAt(to.Position()); ok {
		return target, target.Side != mover.Side
	}

	if mover.Kind == chess.Pawn && from.Col != to.Col {
		beside := board.Square{Col: to.Col, Row: from.Row}
		if target, ok := s.rules.PieceAt(beside.Position()); ok &&
			target.Kind == chess.Pawn && target.Side != mover.Side {
			return target, true
		}
	}
	return chess.Piece{}, false
}

// Reset starts a new game and returns the session to its initial state.
func (s *Session) Reset() {
	s.rules = s.newRules()
	s.gameID = uuid.NewString()
	s.clearLegal()
	s.previous = board.Square{}
	s.selected = false
	s.promoting = false
	s.pending = Move{}
	s.captures.Clear()

	log.Info().Str("game", s.gameID).Msg("New game")
	s.notify(s.event(EventReset))
}

func (s *Session) clearLegal() {
	for sq := range s.legal {
		delete(s.legal, sq)
	}
}

func (s *Session) event(t EventType) Event {
	return Event{
		Type:      t,
		GameID:    s.gameID,
		State:     s.rules.GameState(),
		Turn:      s.rules.SideToMove(),
		FEN:       s.rules.FEN(),
		WhiteLost: s.captures.Lost(chess.White),
		BlackLost: s.captures.Lost(chess.Black),
	}
}

func (s *Session) notify(ev Event) {
	for _, o := range s.observers {
		o(ev)
	}
}

// Rules exposes the current game for read-only queries.
func (s *Session) Rules() Rules {
	return s.rules
}

// Current describes the game as it stands, without a move attached.
func (s *Session) Current() Event {
	return s.event(EventStart)
}

// GameID identifies the current game; it changes on every reset.
func (s *Session) GameID() string {
	return s.gameID
}

// Selected returns the square of the pending selection, if any.
func (s *Session) Selected() (board.Square, bool) {
	return s.previous, s.selected
}

// IsLegal reports whether sq is highlighted as a destination.
func (s *Session) IsLegal(sq board.Square) bool {
	return s.legal[sq]
}

// LegalDestinations returns the highlighted squares, top row first.
func (s *Session) LegalDestinations() []board.Square {
	out := make([]board.Square, 0, len(s.legal))
	for sq := range s.legal {
		out = append(out, sq)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (s *Session) PromotionPending() bool {
	return s.promoting
}

// PendingMove is the promoting move waiting for a choice, or the zero Move.
func (s *Session) PendingMove() Move {
	return s.pending
}

// Captures returns the pieces side has lost, oldest first.
func (s *Session) Captures(side chess.Side) []chess.Piece {
	return s.captures.Lost(side)
}
