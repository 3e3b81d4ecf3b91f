package gui

import (
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/render"
)

// The debug font is a fixed 6x16 cell.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

type canvas struct {
	dst *ebiten.Image
	pal render.Palette
}

func (c *canvas) Fill(clr color.Color) {
	c.dst.Fill(clr)
}

func (c *canvas) FillRect(r board.Rect, clr color.Color) {
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func (c *canvas) FillCircle(cx, cy, radius float64, clr color.Color) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(radius), clr, true)
}

// Text ignores clr: the debug font only prints in white.
func (c *canvas) Text(s string, x, y float64, _ color.Color) {
	ebitenutil.DebugPrintAt(c.dst, s, int(x), int(y))
}

func (c *canvas) TextWidth(s string) float64 {
	return textWidth(s)
}

func textWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s) * glyphWidth)
}

// Piece draws a disc in the side's colour with the piece letter on top.
func (c *canvas) Piece(p chess.Piece, x, y, scale float64) {
	size := board.CellSize * scale
	cx, cy := x+size/2, y+size/2

	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(size*0.38), c.pal.PieceColor(p.Side.Opposite()), true)
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(size*0.34), c.pal.PieceColor(p.Side), true)

	if backdrop, ok := c.letterBackdrop(p.Side); ok {
		vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(glyphHeight*scale*0.9), backdrop, true)
	}

	letter := render.Letter(p)
	ebitenutil.DebugPrintAt(c.dst, letter, int(cx)-glyphWidth/2, int(cy)-glyphHeight/2)
}

// letterBackdrop returns the disc drawn under a piece letter. The debug font
// is white, so light pieces get a dark centre.
func (c *canvas) letterBackdrop(side chess.Side) (color.Color, bool) {
	if side != chess.White {
		return nil, false
	}
	return c.pal.PieceColor(chess.Black), true
}
