package chess

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSquare    = errors.New("invalid square notation")
	ErrIllegalMove      = errors.New("illegal move")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// Side is one of the two players.
type Side int

const (
	White Side = iota
	Black
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == Black {
		return "black"
	}
	return "white"
}

// Kind is a piece type.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	if k < Pawn || k > King {
		return "unknown"
	}
	return kindNames[k]
}

// Piece identifies a piece by kind and side. Pieces compare by value.
type Piece struct {
	Kind Kind
	Side Side
}

func (p Piece) String() string {
	return p.Side.String() + " " + p.Kind.String()
}

// MarshalText lets pieces appear as "white queen" in JSON snapshots.
func (p Piece) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the "<side> <kind>" form written by MarshalText.
func (p *Piece) UnmarshalText(text []byte) error {
	side, kind, ok := strings.Cut(string(text), " ")
	if !ok {
		return fmt.Errorf("invalid piece %q", text)
	}

	var parsed Piece
	switch side {
	case White.String():
		parsed.Side = White
	case Black.String():
		parsed.Side = Black
	default:
		return fmt.Errorf("invalid piece side %q", side)
	}

	for k, name := range kindNames {
		if name == kind {
			parsed.Kind = Kind(k)
			*p = parsed
			return nil
		}
	}
	return fmt.Errorf("invalid piece kind %q", kind)
}

// GameState is the coarse status the client displays.
type GameState int

const (
	InProgress GameState = iota
	Check
	Checkmate
	Draw
)

func (g GameState) String() string {
	switch g {
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Over reports whether no further moves can be played.
func (g GameState) Over() bool {
	return g == Checkmate || g == Draw
}

type MoveResult struct {
	From      string `json:"from"`
	To        string `json:"to"`
	SAN       string `json:"san"`
	FEN       string `json:"fen"`
	Promotion string `json:"promotion,omitempty"`
	Check     bool   `json:"check"`
	Checkmate bool   `json:"checkmate"`
	Draw      bool   `json:"draw"`
	GameOver  bool   `json:"gameOver"`
	Result    string `json:"result"`
}

// PieceValues maps piece kinds to their standard material values.
var PieceValues = map[Kind]int{
	Pawn:   1,
	Knight: 3,
	Bishop: 3,
	Rook:   5,
	Queen:  9,
	King:   0,
}

// MaterialCount is the material each side has on the board.
type MaterialCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}
