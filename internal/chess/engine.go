package chess

import (
	"fmt"

	"github.com/notnil/chess"
	"github.com/schack/schack/internal/board"
)

// Engine is the rule engine behind the client. It owns a single game and
// answers the board queries the interaction layer makes.
type Engine struct {
	game  *chess.Game
	promo chess.PieceType
}

func NewEngine() *Engine {
	return &Engine{
		game:  chess.NewGame(),
		promo: chess.Queen,
	}
}

func NewEngineFromFEN(fen string) (*Engine, error) {
	fenFunc, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}

	return &Engine{
		game:  chess.NewGame(fenFunc),
		promo: chess.Queen,
	}, nil
}

// ValidateFEN reports whether fen describes a position the engine accepts.
func ValidateFEN(fen string) error {
	_, err := chess.FEN(fen)
	return err
}

// PieceAt returns the piece standing on p, if any.
func (e *Engine) PieceAt(p board.Position) (Piece, bool) {
	sq := positionSquare(p)
	if sq == chess.NoSquare {
		return Piece{}, false
	}
	return fromEnginePiece(e.game.Position().Board().Piece(sq))
}

// LegalDestinations lists the squares the piece on from may move to. Empty
// squares, pieces of the side not to move and malformed input yield nil.
func (e *Engine) LegalDestinations(from string) []string {
	fromSquare := parseSquare(from)
	if fromSquare == chess.NoSquare {
		return nil
	}

	var dests []string
	seen := make(map[chess.Square]bool)
	for _, m := range e.game.ValidMoves() {
		// promotions appear once per piece type
		if m.S1() != fromSquare || seen[m.S2()] {
			continue
		}
		seen[m.S2()] = true
		dests = append(dests, m.S2().String())
	}
	return dests
}

// SetPromotion selects the piece type used by the next promoting move. The
// choice persists until it is changed.
func (e *Engine) SetPromotion(name string) error {
	promo := ParsePromotion(name)
	if promo == chess.NoPieceType {
		return fmt.Errorf("%w: %q", ErrInvalidPromotion, name)
	}
	e.promo = promo
	return nil
}

// Promotion returns the piece type the next promoting move will produce.
func (e *Engine) Promotion() Kind {
	k, _ := fromEngineType(e.promo)
	return k
}

// CommitMove plays from-to. Promoting moves use the current promotion choice.
func (e *Engine) CommitMove(from, to string) (*MoveResult, error) {
	fromSquare := parseSquare(from)
	toSquare := parseSquare(to)

	if fromSquare == chess.NoSquare || toSquare == chess.NoSquare {
		return nil, ErrInvalidSquare
	}

	var validMove *chess.Move
	for _, vm := range e.game.ValidMoves() {
		if vm.S1() != fromSquare || vm.S2() != toSquare {
			continue
		}
		if vm.Promo() == chess.NoPieceType || vm.Promo() == e.promo {
			validMove = vm
			break
		}
	}

	if validMove == nil {
		return nil, fmt.Errorf("%w: %s to %s", ErrIllegalMove, from, to)
	}

	before := e.game.Position()
	san := chess.AlgebraicNotation{}.Encode(before, validMove)

	if err := e.game.Move(validMove); err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	result := &MoveResult{
		From:      from,
		To:        to,
		SAN:       san,
		FEN:       e.game.FEN(),
		Check:     validMove.HasTag(chess.Check),
		Checkmate: e.game.Method() == chess.Checkmate,
		Draw:      e.game.Outcome() == chess.Draw,
		GameOver:  e.game.Outcome() != chess.NoOutcome,
	}
	if kind, ok := fromEngineType(validMove.Promo()); ok {
		result.Promotion = kind.String()
	}

	if e.game.Outcome() != chess.NoOutcome {
		result.Result = e.game.Outcome().String()
	}

	return result, nil
}

// GameState condenses the engine's outcome into the states the client shows.
func (e *Engine) GameState() GameState {
	switch e.game.Outcome() {
	case chess.NoOutcome:
	case chess.Draw:
		return Draw
	default:
		if e.game.Method() == chess.Checkmate {
			return Checkmate
		}
		return Draw
	}

	moves := e.game.Moves()
	if len(moves) > 0 && moves[len(moves)-1].HasTag(chess.Check) {
		return Check
	}
	return InProgress
}

// DrawReason names the rule that ended a drawn game, or "" if not drawn.
func (e *Engine) DrawReason() string {
	if e.game.Outcome() != chess.Draw {
		return ""
	}
	return e.game.Method().String()
}

func (e *Engine) SideToMove() Side {
	if e.game.Position().Turn() == chess.Black {
		return Black
	}
	return White
}

func (e *Engine) FEN() string {
	return e.game.FEN()
}

func (e *Engine) PGN() string {
	return e.game.String()
}

// MoveCount is the number of half moves played.
func (e *Engine) MoveCount() int {
	return len(e.game.Moves())
}

// MaterialCount sums the piece values each side still has on the board.
func (e *Engine) MaterialCount() MaterialCount {
	var count MaterialCount
	for _, p := range e.game.Position().Board().SquareMap() {
		piece, ok := fromEnginePiece(p)
		if !ok {
			continue
		}
		if piece.Side == White {
			count.White += PieceValues[piece.Kind]
		} else {
			count.Black += PieceValues[piece.Kind]
		}
	}
	return count
}

// MaterialBalance is White's material minus Black's.
func (e *Engine) MaterialBalance() int {
	count := e.MaterialCount()
	return count.White - count.Black
}

func parseSquare(sq string) chess.Square {
	if len(sq) != 2 {
		return chess.NoSquare
	}

	file := int(sq[0]) - 'a'
	rank := int(sq[1]) - '1'

	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoSquare
	}

	return chess.Square(rank*8 + file)
}

func positionSquare(p board.Position) chess.Square {
	if p.File < 1 || p.File > 8 || p.Rank < 1 || p.Rank > 8 {
		return chess.NoSquare
	}
	return chess.Square((p.Rank-1)*8 + p.File - 1)
}

// ParsePromotion accepts both the single letter and the full piece name.
func ParsePromotion(p string) chess.PieceType {
	switch p {
	case "q", "queen":
		return chess.Queen
	case "r", "rook":
		return chess.Rook
	case "b", "bishop":
		return chess.Bishop
	case "n", "knight":
		return chess.Knight
	default:
		return chess.NoPieceType
	}
}

func fromEnginePiece(p chess.Piece) (Piece, bool) {
	if p == chess.NoPiece {
		return Piece{}, false
	}
	kind, ok := fromEngineType(p.Type())
	if !ok {
		return Piece{}, false
	}
	side := White
	if p.Color() == chess.Black {
		side = Black
	}
	return Piece{Kind: kind, Side: side}, true
}

func fromEngineType(t chess.PieceType) (Kind, bool) {
	switch t {
	case chess.Pawn:
		return Pawn, true
	case chess.Knight:
		return Knight, true
	case chess.Bishop:
		return Bishop, true
	case chess.Rook:
		return Rook, true
	case chess.Queen:
		return Queen, true
	case chess.King:
		return King, true
	default:
		return 0, false
	}
}
