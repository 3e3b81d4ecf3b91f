package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlgebraicRoundTrip(t *testing.T) {
	for col := 0; col < Size; col++ {
		for row := 0; row < Size; row++ {
			sq := Square{Col: col, Row: row}
			assert.Equal(t, sq, FromAlgebraic(sq.Algebraic()), "square %v via %s", sq, sq.Algebraic())
		}
	}
}

func TestAlgebraic(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{Square{0, 0}, "a8"},
		{Square{7, 7}, "h1"},
		{Square{4, 6}, "e2"},
		{Square{4, 4}, "e4"},
		{Square{3, 0}, "d8"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.sq.Algebraic())
		assert.Equal(t, tt.sq, FromAlgebraic(tt.want))
	}
}

func TestPosition(t *testing.T) {
	assert.Equal(t, Position{File: 1, Rank: 8}, Square{0, 0}.Position())
	assert.Equal(t, Position{File: 8, Rank: 1}, Square{7, 7}.Position())
	assert.Equal(t, Position{File: 5, Rank: 2}, Square{4, 6}.Position())

	seen := make(map[Position]bool)
	for col := 0; col < Size; col++ {
		for row := 0; row < Size; row++ {
			sq := Square{Col: col, Row: row}
			p := sq.Position()
			assert.False(t, seen[p], "position %v produced twice", p)
			seen[p] = true
			assert.Equal(t, sq, FromPosition(p))
			assert.Equal(t, sq.Algebraic(), p.Algebraic())
		}
	}
	assert.Len(t, seen, Size*Size)
}

func TestFromAlgebraicShortInput(t *testing.T) {
	assert.False(t, FromAlgebraic("e").OnBoard())
	assert.False(t, FromAlgebraic("").OnBoard())
}

func TestSquareAt(t *testing.T) {
	assert.Equal(t, Square{0, 0}, SquareAt(0, 0))
	assert.Equal(t, Square{0, 0}, SquareAt(89.9, 89.9))
	assert.Equal(t, Square{1, 0}, SquareAt(90, 10))
	assert.Equal(t, Square{4, 6}, SquareAt(400, 580))
	assert.Equal(t, Square{7, 7}, SquareAt(719, 719))

	// clamped
	assert.Equal(t, Square{0, 7}, SquareAt(-5, 900))
	assert.Equal(t, Square{7, 0}, SquareAt(1000, -1))
}

func TestOnGrid(t *testing.T) {
	assert.True(t, OnGrid(0))
	assert.True(t, OnGrid(719.5))
	assert.False(t, OnGrid(720))
	assert.False(t, OnGrid(800))
}

func TestPromotionChoiceAt(t *testing.T) {
	tests := []struct {
		x      float64
		want   string
		inBand bool
	}{
		{10, "", false},
		{20, "queen", true},
		{90, "queen", true},
		{200, "queen", true},
		{200.5, "knight", true},
		{290, "knight", true},
		{380, "knight", true},
		{470, "rook", true},
		{560, "rook", true},
		{650, "bishop", true},
		{740, "bishop", true},
		{741, "", false},
	}

	for _, tt := range tests {
		got, ok := PromotionChoiceAt(tt.x)
		assert.Equal(t, tt.inBand, ok, "x=%v", tt.x)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}
}

func TestInPromotionRow(t *testing.T) {
	assert.False(t, InPromotionRow(730))
	assert.True(t, InPromotionRow(740))
	assert.True(t, InPromotionRow(800))
	assert.True(t, InPromotionRow(850))
	assert.False(t, InPromotionRow(860))
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	assert.True(t, r.Contains(10, 10))
	assert.True(t, r.Contains(30, 30))
	assert.False(t, r.Contains(31, 20))
	assert.Equal(t, Rect{X: 360, Y: 540, W: 90, H: 90}, CellRect(Square{4, 6}))
}
