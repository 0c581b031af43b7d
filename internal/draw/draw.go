// Package draw holds the terminal primitives: ANSI helpers, a chunked writer
// and a half-block canvas.
package draw

import (
	"fmt"
	"io"
	"math"
	"os"

	"golang.org/x/term"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}

// EnableMouse turns on button press reporting in SGR encoding.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse undoes EnableMouse.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns actual terminal dimensions using the provided size function.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	return sizeFunc()
}

// Layout is where a scaled canvas sits inside the terminal.
type Layout struct {
	Cols, Rows           int // Canvas size in cells
	OffsetCol, OffsetRow int // 0-based cells skipped before the canvas
}

// Fit computes the largest canvas that shows a logicalW x logicalH playfield
// inside a termW x termH terminal without distortion, leaving one cell on
// each side for the border. Each cell is two sub-pixels tall, so one logical
// unit maps to the same number of columns and sub-pixel rows. maxCols caps
// the canvas width; 0 means no cap.
func Fit(termW, termH int, logicalW, logicalH float64, maxCols int) Layout {
	availW := max(termW-2, 1)
	if maxCols > 0 && availW > maxCols {
		availW = maxCols
	}
	availH := max(termH-2, 1)

	scale := math.Min(float64(availW)/logicalW, float64(availH*2)/logicalH)
	cols := max(int(logicalW*scale), 1)
	rows := max(int(logicalH*scale/2), 1)

	return Layout{
		Cols:      cols,
		Rows:      rows,
		OffsetCol: max((termW-cols)/2, 0),
		OffsetRow: max((termH-rows)/2, 0),
	}
}
