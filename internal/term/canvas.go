package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/render"
)

// One terminal cell covers CellWidth x CellHeight window pixels, so a board
// square is four columns by two rows.
const (
	CellWidth  = 22.5
	CellHeight = 45.0
)

// Columns and Rows are the terminal size needed to show the whole window.
var (
	Columns = int(math.Ceil(board.ScreenWidth / CellWidth))
	Rows    = int(math.Ceil(board.ScreenHeight / CellHeight))
)

type canvas struct {
	screen tcell.Screen
	pal    render.Palette
}

func toCell(x, y float64) (int, int) {
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

// toPixel maps a cell to the window pixel at its centre.
func toPixel(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

func colorOf(c color.Color) tcell.Color {
	return tcell.FromImageColor(c)
}

func (c *canvas) Fill(clr color.Color) {
	c.screen.Fill(' ', tcell.StyleDefault.Background(colorOf(clr)))
}

func (c *canvas) FillRect(r board.Rect, clr color.Color) {
	style := tcell.StyleDefault.Background(colorOf(clr))
	col0, row0 := toCell(r.X, r.Y)
	col1 := int(math.Ceil((r.X+r.W)/CellWidth)) - 1
	row1 := int(math.Ceil((r.Y+r.H)/CellHeight)) - 1
	for row := row0; row <= row1; row++ {
		for col := col0; col <= col1; col++ {
			c.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// FillCircle marks the cell holding the centre; a disc of indicator size is
// smaller than one cell.
func (c *canvas) FillCircle(cx, cy, _ float64, clr color.Color) {
	col, row := toCell(cx, cy)
	c.set(col, row, '●', colorOf(clr))
}

func (c *canvas) Text(s string, x, y float64, clr color.Color) {
	col, row := toCell(x, y)
	for _, r := range s {
		c.set(col, row, r, colorOf(clr))
		col++
	}
}

func (c *canvas) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * CellWidth
}

func (c *canvas) Piece(p chess.Piece, x, y, scale float64) {
	size := board.CellSize * scale
	col, row := toCell(x+size/2, y+size/2)
	c.set(col, row, render.Glyph(p), colorOf(c.pal.PieceColor(p.Side)))
}

// set writes r in fg on top of whatever background the cell already has.
func (c *canvas) set(col, row int, r rune, fg tcell.Color) {
	_, _, style, _ := c.screen.GetContent(col, row)
	_, bg, _ := style.Decompose()
	c.screen.SetContent(col, row, r, nil, tcell.StyleDefault.Background(bg).Foreground(fg))
}
