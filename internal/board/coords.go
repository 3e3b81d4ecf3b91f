// Package board translates between on-screen cells, algebraic notation and
// the rule engine's 1-indexed positions, and holds the fixed pixel layout of
// the client window.
package board

import "fmt"

// Size is the number of cells along one edge of the board.
const Size = 8

// Square is a cell in screen orientation: Row 0 is the top of the screen
// (rank 8) and Col 0 is the left edge (file a).
type Square struct {
	Col int
	Row int
}

// Position is the rule engine's native square: File and Rank are 1-indexed,
// rank 1 is White's back rank.
type Position struct {
	File int
	Rank int
}

func (s Square) String() string {
	return fmt.Sprintf("(%d,%d)", s.Col, s.Row)
}

// OnBoard reports whether both coordinates lie in [0,7].
func (s Square) OnBoard() bool {
	return s.Col >= 0 && s.Col < Size && s.Row >= 0 && s.Row < Size
}

// Algebraic returns the two character code for s, e.g. (4,6) -> "e2".
// The result is meaningless for squares that are not on the board.
func (s Square) Algebraic() string {
	return string([]byte{byte('a' + s.Col), byte('8' - s.Row)})
}

// Position converts s into the engine's coordinate space.
func (s Square) Position() Position {
	return Position{File: s.Col + 1, Rank: Size - s.Row}
}

// FromAlgebraic is the inverse of Square.Algebraic. Callers only pass codes
// produced by the engine or by Algebraic itself.
func FromAlgebraic(code string) Square {
	if len(code) < 2 {
		return Square{Col: -1, Row: -1}
	}
	return Square{Col: int(code[0]) - 'a', Row: '8' - int(code[1])}
}

// FromPosition maps an engine position back onto the screen.
func FromPosition(p Position) Square {
	return Square{Col: p.File - 1, Row: Size - p.Rank}
}

// Algebraic returns the code for p, e.g. {5,2} -> "e2".
func (p Position) Algebraic() string {
	return FromPosition(p).Algebraic()
}
