// Package render draws a session onto a Canvas. It only reads: the board
// comes from the rule engine's queries, everything else from the session.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/schack/schack/internal/board"
	"github.com/schack/schack/internal/chess"
	"github.com/schack/schack/internal/session"
)

// Canvas is the set of drawing primitives a front end provides. Coordinates
// are window pixels.
type Canvas interface {
	Fill(c color.Color)
	FillRect(r board.Rect, c color.Color)
	FillCircle(cx, cy, radius float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
	TextWidth(s string) float64
	// Piece draws p with its top-left corner at (x, y), scaled relative to
	// a full cell.
	Piece(p chess.Piece, x, y, scale float64)
}

const (
	indicatorRadius = 25.0
	trayIconScale   = 0.4
	captionY        = 780.0
	replayY         = 825.0
)

// Frame draws one complete frame of s.
func Frame(c Canvas, s *session.Session, pal Palette) {
	rules := s.Rules()
	turn := rules.SideToMove()

	if turn == chess.Black {
		c.Fill(pal.BlackTurn)
	} else {
		c.Fill(pal.WhiteTurn)
	}

	drawBoard(c, s, pal)

	if s.PromotionPending() {
		drawPromotion(c, turn, pal)
		return
	}

	drawCentered(c, Caption(rules), captionY, pal.Text)
	if rules.GameState().Over() {
		drawCentered(c, "Click below the board to play again", replayY, pal.Text)
	}
	drawTray(c, s, pal)
}

func drawBoard(c Canvas, s *session.Session, pal Palette) {
	rules := s.Rules()
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Square{Col: col, Row: row}
			r := board.CellRect(sq)
			c.FillRect(r, pal.Tile(sq))

			if p, ok := rules.PieceAt(sq.Position()); ok {
				c.Piece(p, r.X, r.Y, 1)
			}

			if s.IsLegal(sq) {
				c.FillCircle(r.X+r.W/2, r.Y+r.H/2, indicatorRadius, pal.Highlight)
			}
		}
	}
}

func drawPromotion(c Canvas, turn chess.Side, pal Palette) {
	c.FillRect(board.PromotionRect, pal.Panel)
	for i, kind := range promotionKinds {
		x, y := board.PromotionIcon(i)
		c.Piece(chess.Piece{Kind: kind, Side: turn}, x, y, 1)
	}
}

// promotionKinds mirrors board.PromotionChoices.
var promotionKinds = [4]chess.Kind{chess.Queen, chess.Knight, chess.Rook, chess.Bishop}

func drawTray(c Canvas, s *session.Session, pal Palette) {
	c.FillRect(board.TrayRect, pal.Panel)
	for i, p := range s.Captures(chess.White) {
		c.Piece(p, 10+20*float64(i), 730, trayIconScale)
	}
	for i, p := range s.Captures(chess.Black) {
		c.Piece(p, 670-20*float64(i), 730, trayIconScale)
	}
}

func drawCentered(c Canvas, text string, y float64, clr color.Color) {
	x := (board.ScreenWidth - c.TextWidth(text)) / 2
	c.Text(text, x, y, clr)
}

type drawReasoner interface {
	DrawReason() string
}

// Caption describes the game state and whose turn it is.
func Caption(rules session.Rules) string {
	turn := sideName(rules.SideToMove())
	switch rules.GameState() {
	case chess.Check:
		return fmt.Sprintf("Check! %s to move", turn)
	case chess.Checkmate:
		return fmt.Sprintf("Checkmate, %s wins", sideName(rules.SideToMove().Opposite()))
	case chess.Draw:
		if dr, ok := rules.(drawReasoner); ok && dr.DrawReason() != "" {
			return fmt.Sprintf("Draw (%s)", dr.DrawReason())
		}
		return "Draw"
	default:
		return fmt.Sprintf("%s to move", turn)
	}
}

func sideName(s chess.Side) string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}
