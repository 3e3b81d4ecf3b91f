package session

import (
	"testing"

	"github.com/schack/schack/internal/chess"
	"github.com/stretchr/testify/assert"
)

func TestLedgerRecordAppendsPerSide(t *testing.T) {
	var l Ledger

	l.Record(chess.Piece{Kind: chess.Pawn, Side: chess.Black})
	l.Record(chess.Piece{Kind: chess.Knight, Side: chess.White})
	l.Record(chess.Piece{Kind: chess.Pawn, Side: chess.Black})
	l.Record(chess.Piece{Kind: chess.Queen, Side: chess.Black})

	assert.Equal(t, []chess.Piece{
		{Kind: chess.Pawn, Side: chess.Black},
		{Kind: chess.Pawn, Side: chess.Black},
		{Kind: chess.Queen, Side: chess.Black},
	}, l.Lost(chess.Black))
	assert.Equal(t, []chess.Piece{{Kind: chess.Knight, Side: chess.White}}, l.Lost(chess.White))
	assert.Equal(t, 3, l.Len(chess.Black))
	assert.Equal(t, 1, l.Len(chess.White))
}

func TestLedgerHasNoUpperBound(t *testing.T) {
	var l Ledger
	for i := 0; i < 20; i++ {
		l.Record(chess.Piece{Kind: chess.Pawn, Side: chess.White})
	}
	assert.Equal(t, 20, l.Len(chess.White))
}

func TestLedgerClear(t *testing.T) {
	var l Ledger
	l.Record(chess.Piece{Kind: chess.Rook, Side: chess.White})
	l.Record(chess.Piece{Kind: chess.Bishop, Side: chess.Black})

	l.Clear()

	assert.Empty(t, l.Lost(chess.White))
	assert.Empty(t, l.Lost(chess.Black))
}

func TestLedgerLostIsACopy(t *testing.T) {
	var l Ledger
	l.Record(chess.Piece{Kind: chess.Rook, Side: chess.White})

	lost := l.Lost(chess.White)
	lost[0] = chess.Piece{Kind: chess.Queen, Side: chess.White}

	assert.Equal(t, chess.Rook, l.Lost(chess.White)[0].Kind)
}
