package render

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/chess"
)

// Palette holds every colour a frame uses.
type Palette struct {
	Light      color.Color
	Dark       color.Color
	Highlight  color.Color
	WhiteTurn  color.Color
	BlackTurn  color.Color
	Panel      color.Color
	Text       color.Color
	WhitePiece color.Color
	BlackPiece color.Color
}

// DefaultPalette is the stock grey board on an orange or purple backdrop.
var DefaultPalette = Palette{
	Light:      color.RGBA{R: 70, G: 70, B: 70, A: 255},
	Dark:       color.RGBA{R: 30, G: 30, B: 30, A: 255},
	Highlight:  color.RGBA{R: 76, G: 128, B: 76, A: 128},
	WhiteTurn:  color.RGBA{R: 247, G: 77, B: 0, A: 255},
	BlackTurn:  color.RGBA{R: 94, G: 79, B: 135, A: 255},
	Panel:      color.RGBA{R: 51, G: 51, B: 51, A: 255},
	Text:       color.RGBA{A: 255},
	WhitePiece: color.RGBA{R: 240, G: 240, B: 240, A: 255},
	BlackPiece: color.RGBA{R: 10, G: 10, B: 10, A: 255},
}

// Theme is the hex form of the configurable colours.
type Theme struct {
	Light     string
	Dark      string
	Highlight string
	WhiteTurn string
	BlackTurn string
}

// PaletteFromTheme overrides the default colours with the non-empty hex
// values of t.
func PaletteFromTheme(t Theme) (Palette, error) {
	pal := DefaultPalette
	fields := []struct {
		name string
		hex  string
		dst  *color.Color
	}{
		{"light", t.Light, &pal.Light},
		{"dark", t.Dark, &pal.Dark},
		{"highlight", t.Highlight, &pal.Highlight},
		{"white_turn", t.WhiteTurn, &pal.WhiteTurn},
		{"black_turn", t.BlackTurn, &pal.BlackTurn},
	}

	for _, f := range fields {
		if f.hex == "" {
			continue
		}
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		r, g, b := c.RGB255()
		alpha := uint8(255)
		if f.dst == &pal.Highlight {
			alpha = 128
		}
		*f.dst = color.RGBA{R: premultiply(r, alpha), G: premultiply(g, alpha), B: premultiply(b, alpha), A: alpha}
	}
	return pal, nil
}

func premultiply(v, alpha uint8) uint8 {
	return uint8(uint16(v) * uint16(alpha) / 255)
}

// Tile is the checkerboard colour of sq; a8 is light.
func (p Palette) Tile(sq board.Square) color.Color {
	if (sq.Col+sq.Row)%2 == 0 {
		return p.Light
	}
	return p.Dark
}

// PieceColor is the fill used for pieces of side s.
func (p Palette) PieceColor(s chess.Side) color.Color {
	if s == chess.Black {
		return p.BlackPiece
	}
	return p.WhitePiece
}

var glyphs = [2][6]rune{
	chess.White: {chess.Pawn: '♙', chess.Knight: '♘', chess.Bishop: '♗', chess.Rook: '♖', chess.Queen: '♕', chess.King: '♔'},
	chess.Black: {chess.Pawn: '♟', chess.Knight: '♞', chess.Bishop: '♝', chess.Rook: '♜', chess.Queen: '♛', chess.King: '♚'},
}

var letters = [2][6]string{
	chess.White: {chess.Pawn: "P", chess.Knight: "N", chess.Bishop: "B", chess.Rook: "R", chess.Queen: "Q", chess.King: "K"},
	chess.Black: {chess.Pawn: "p", chess.Knight: "n", chess.Bishop: "b", chess.Rook: "r", chess.Queen: "q", chess.King: "k"},
}

// Glyph is the Unicode chess symbol for p.
func Glyph(p chess.Piece) rune {
	return glyphs[p.Side][p.Kind]
}

// Letter is the FEN letter for p, upper case for White.
func Letter(p chess.Piece) string {
	return letters[p.Side][p.Kind]
}
