package draw

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/muesli/termenv"
)

// Color is an index into the canvas palette. Zero is the empty background.
type Color uint8

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. It scales from logical coordinates to terminal pixels and only
// re-emits the cells that changed since the previous Render.
type Canvas struct {
	termWidth      int     // Canvas columns
	termHeight     int     // Canvas rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// prev holds the last rendered (top, bottom) pair per cell.
	prev      [][2]Color
	prevValid bool

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets of the canvas when it is smaller than the terminal.
	offsetCol int
	offsetRow int

	fg []string // SGR sequence per palette entry
	bg []string

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that maps a logicalWidth x logicalHeight
// space onto termWidth x termHeight cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// SetPalette assigns colors to palette entries 1..len(colors). Colors are
// hex ("#f5c542") or ANSI ("214") strings, degraded to what profile supports.
func (c *Canvas) SetPalette(profile termenv.Profile, colors ...string) {
	c.fg = make([]string, len(colors)+1)
	c.bg = make([]string, len(colors)+1)
	for i, s := range colors {
		col := profile.Color(s)
		if col == nil {
			continue
		}
		if seq := col.Sequence(false); seq != "" {
			c.fg[i+1] = termenv.CSI + seq + "m"
		}
		if seq := col.Sequence(true); seq != "" {
			c.bg[i+1] = termenv.CSI + seq + "m"
		}
	}
	c.ForceRedraw()
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]Color, c.subPixelHeight*termWidth)
		c.prev = make([][2]Color, termHeight*termWidth)
		c.prevValid = false
	}
	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.offsetCol = col
		c.offsetRow = row
		c.prevValid = false
	}
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every cell, e.g. after the screen
// was cleared.
func (c *Canvas) ForceRedraw() {
	c.prevValid = false
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// FillRect fills a rectangle given in logical coordinates. Any non-empty
// rectangle covers at least one pixel on each axis.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := scaleSpan(x, w, c.scaleX, c.termWidth)
	y0, y1 := scaleSpan(y, h, c.scaleY, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px < x1; px++ {
			row[px] = color
		}
	}
}

// scaleSpan maps [start, start+size) to pixel indexes clamped to [0, limit).
func scaleSpan(start, size, scale float64, limit int) (lo, hi int) {
	lo = int(math.Floor(start * scale))
	hi = int(math.Ceil((start + size) * scale))
	if hi <= lo {
		hi = lo + 1
	}
	return min(max(lo, 0), limit), min(max(hi, 0), limit)
}

// At returns the color of a pixel in terminal sub-pixel coordinates.
func (c *Canvas) At(px, py int) Color {
	if px < 0 || px >= c.termWidth || py < 0 || py >= c.subPixelHeight {
		return 0
	}
	return c.pixels[py*c.termWidth+px]
}

// Render writes the cells that changed since the last Render to w using
// half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			cell := [2]Color{c.pixels[topOffset+col], c.pixels[bottomOffset+col]}
			idx := row*c.termWidth + col
			if c.prevValid && c.prev[idx] == cell {
				continue
			}
			c.prev[idx] = cell
			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			c.writeCell(cell[0], cell[1])
		}
	}
	c.prevValid = true
	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString("\033[0m")

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) writeCell(top, bottom Color) {
	b := &c.renderBuf
	b.WriteString("\033[0m")
	switch {
	case top == 0 && bottom == 0:
		b.WriteRune(BlockEmpty)
	case top == bottom:
		b.WriteString(c.seq(c.fg, top))
		b.WriteRune(BlockFull)
	case top != 0 && bottom != 0:
		b.WriteString(c.seq(c.fg, top))
		b.WriteString(c.seq(c.bg, bottom))
		b.WriteRune(BlockUpperHalf)
	case top != 0:
		b.WriteString(c.seq(c.fg, top))
		b.WriteRune(BlockUpperHalf)
	default:
		b.WriteString(c.seq(c.fg, bottom))
		b.WriteRune(BlockLowerHalf)
	}
}

func (c *Canvas) seq(table []string, color Color) string {
	if int(color) < len(table) {
		return table[color]
	}
	return ""
}

// RenderBorder draws a box border around the canvas area when there is room
// for it on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := strings.Repeat("─", c.termWidth)

	var buf strings.Builder
	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, buf.String())
}

// TerminalWidth returns the canvas column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the canvas row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
