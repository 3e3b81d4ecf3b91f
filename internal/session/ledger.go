package session

import "github.com/schack/schack/internal/chess"

// Ledger records the pieces each side has lost, in the order they were
// taken.
type Ledger struct {
	lost [2][]chess.Piece
}

// Record appends p to the sequence of the side that owned it.
func (l *Ledger) Record(p chess.Piece) {
	l.lost[p.Side] = append(l.lost[p.Side], p)
}

// Clear empties both sides.
func (l *Ledger) Clear() {
	l.lost[chess.White] = nil
	l.lost[chess.Black] = nil
}

// Lost returns a copy of the pieces side has lost so far.
func (l *Ledger) Lost(side chess.Side) []chess.Piece {
	out := make([]chess.Piece, len(l.lost[side]))
	copy(out, l.lost[side])
	return out
}

// Len is the number of pieces side has lost.
func (l *Ledger) Len(side chess.Side) int {
	return len(l.lost[side])
}
