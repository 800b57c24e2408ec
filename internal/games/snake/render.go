package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Each board cell is drawn two columns wide so cells look square.
const (
	cellCols  = 2
	hudHeight = 2
	boardCols = BoardWidth*cellCols + 2 // with border
	boardRows = BoardHeight + 2

	// MinScreenW and MinScreenH are the smallest screen that fits the board.
	MinScreenW = boardCols
	MinScreenH = boardRows + hudHeight
)

var (
	glyphHead = [cellCols]rune{'█', '█'}
	glyphBody = [cellCols]rune{'▓', '▓'}

	kindGlyphs = map[Kind][cellCols]rune{
		KindFruit:    {'<', '>'},
		KindObstacle: {'#', '#'},
		KindShrink:   {'-', '-'},
		KindPenalty:  {'!', '!'},
		KindBonus:    {'$', '$'},
	}
)

// RenderFrame draws f into dst: a HUD line, a separator and the bordered
// board centered horizontally. Screens smaller than the board get a
// message instead.
func RenderFrame(dst *core.Screen, f Frame, p Palette, title string) {
	dst.Clear()
	renderHUD(dst, f, title)

	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	board := core.NewRect(max((dst.Width()-boardCols)/2, 0), hudHeight, boardCols, boardRows)
	if !screen.Contains(board.Right()-1, board.Bottom()-1) {
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	offX, offY := board.X, board.Y
	dst.DrawBox(board, p.Border)

	put := func(c Cell, g [cellCols]rune, col core.Color) {
		x := offX + 1 + c.X*cellCols
		y := offY + 1 + c.Y
		for i, r := range g {
			dst.SetCell(x+i, y, r, col)
		}
	}

	for _, ev := range f.Entities {
		for _, c := range ev.Cells {
			put(c, kindGlyphs[ev.Kind], ev.Color)
		}
	}
	// Body first so the head wins if it shares a cell with an entity.
	for i := len(f.Snake) - 1; i >= 0; i-- {
		g := glyphBody
		if i == 0 {
			g = glyphHead
		}
		put(f.Snake[i], g, f.SnakeColor)
	}
}

func renderHUD(dst *core.Screen, f Frame, title string) {
	hud := fmt.Sprintf(" %s  Length: %d  Speed: %d", title, f.Length, f.TickRate)
	if f.Skin != SkinBase {
		hud += "  Skin: " + f.Skin.String()
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a two-line message box in the middle of the screen.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	cx, cy := core.NewRect(0, 0, dst.Width(), dst.Height()).Center()
	x, y := cx-w/2, cy-h/2

	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			dst.Set(col, row, ' ')
		}
	}
	dst.DrawBox(core.NewRect(x, y, w, h), core.ColorDefault)
	dst.DrawTextCentered(y+1, line1)
	dst.DrawTextCentered(y+3, line2)
}
