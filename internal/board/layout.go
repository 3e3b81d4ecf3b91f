package board

// Pixel geometry of the client window. Everything above BoardHeight is the
// grid; the strip below holds the capture tray, the status caption and, while
// a promotion is pending, the promotion choices.
const (
	CellSize     = 90.0
	BoardHeight  = CellSize * Size
	ScreenWidth  = CellSize * Size
	ScreenHeight = BoardHeight + 150.0

	promoTop    = 740.0
	promoBottom = 850.0
	promoLeft   = 20.0
	promoBand   = 180.0
)

// Rect is an axis aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) falls inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

var (
	// TrayRect is the backdrop of the capture tray.
	TrayRect = Rect{X: 5, Y: 725, W: 710, H: 40}
	// PromotionRect is the backdrop of the promotion overlay.
	PromotionRect = Rect{X: 20, Y: 740, W: 680, H: 110}
)

// PromotionChoices lists the promotion bands left to right, most frequently
// chosen first. The names are the ones the rule engine accepts.
var PromotionChoices = [4]string{"queen", "knight", "rook", "bishop"}

// OnGrid reports whether a pointer position belongs to the board grid.
func OnGrid(y float64) bool {
	return y < BoardHeight
}

// SquareAt returns the cell under a pointer position on the grid. Positions
// outside the window are clamped onto the nearest edge cell.
func SquareAt(x, y float64) Square {
	return Square{Col: clampCell(x), Row: clampCell(y)}
}

func clampCell(v float64) int {
	c := int(v / CellSize)
	if v < 0 {
		c = 0
	}
	if c >= Size {
		c = Size - 1
	}
	return c
}

// CellRect returns the pixel rectangle covered by s.
func CellRect(s Square) Rect {
	return Rect{X: float64(s.Col) * CellSize, Y: float64(s.Row) * CellSize, W: CellSize, H: CellSize}
}

// InPromotionRow reports whether y falls in the strip holding the four
// promotion bands.
func InPromotionRow(y float64) bool {
	return y >= promoTop && y <= promoBottom
}

// PromotionChoiceAt returns the name of the band under x. The first band
// includes its left edge, the others only their right edge.
func PromotionChoiceAt(x float64) (string, bool) {
	if x < promoLeft {
		return "", false
	}
	for i, name := range PromotionChoices {
		if x <= promoLeft+promoBand*float64(i+1) {
			return name, true
		}
	}
	return "", false
}

// PromotionIcon returns the top-left corner of the i-th promotion icon.
func PromotionIcon(i int) (x, y float64) {
	return 50 + promoBand*float64(i), 750
}
