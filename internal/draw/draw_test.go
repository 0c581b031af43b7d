package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestFitKeepsAspect(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		cols, rows int
	}{
		// 480x400 logical: width/height in cells is 480:200.
		{"wide terminal", 200, 52, 120, 50},
		{"narrow terminal", 62, 100, 60, 25},
		{"tiny terminal", 3, 3, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Fit(tt.w, tt.h, 480, 400, 0)
			if l.Cols != tt.cols || l.Rows != tt.rows {
				t.Fatalf("Fit(%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, l.Cols, l.Rows, tt.cols, tt.rows)
			}
			if l.Cols+l.OffsetCol > tt.w || l.Rows+l.OffsetRow > tt.h {
				t.Fatalf("layout %+v overflows %dx%d", l, tt.w, tt.h)
			}
		})
	}
}

func TestFitMaxCols(t *testing.T) {
	l := Fit(400, 200, 480, 400, 96)
	if l.Cols != 96 {
		t.Fatalf("cols = %d, want 96", l.Cols)
	}
	if l.OffsetCol != (400-96)/2 {
		t.Fatalf("offset = %d, want centred", l.OffsetCol)
	}
}

func TestFillRectScales(t *testing.T) {
	c := NewScaledCanvas(48, 20, 480, 400) // 0.1 pixel per unit on both axes
	c.FillRect(50, 150, 34, 24, 1)

	if c.At(5, 15) != 1 || c.At(8, 17) != 1 {
		t.Fatalf("expected bird pixels set")
	}
	if c.At(4, 15) != 0 || c.At(9, 15) != 0 || c.At(5, 14) != 0 || c.At(5, 18) != 0 {
		t.Fatalf("fill leaked outside the rectangle")
	}
}

func TestFillRectClampsAndKeepsThinShapes(t *testing.T) {
	c := NewScaledCanvas(48, 20, 480, 400)
	c.FillRect(-100, -100, 10000, 10000, 2)
	if c.At(0, 0) != 2 || c.At(47, 39) != 2 {
		t.Fatalf("oversized rect not clamped to canvas")
	}

	c.Clear()
	c.FillRect(100, 100, 1, 1, 3)
	if c.At(10, 10) != 3 {
		t.Fatalf("sub-pixel rect vanished")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetPalette(termenv.ANSI256, "214", "34")
	c.FillRect(0, 0, 1, 1, 1) // top half of cell (1,1)
	c.FillRect(1, 0, 1, 2, 2) // full cell (1,2)

	var first bytes.Buffer
	c.Render(&first)
	out := first.String()
	if !strings.Contains(out, string(BlockUpperHalf)) || !strings.Contains(out, string(BlockFull)) {
		t.Fatalf("first render missing blocks: %q", out)
	}
	if !strings.Contains(out, "38;5;214") {
		t.Fatalf("first render missing palette colour: %q", out)
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame emitted %q", second.String())
	}

	c.Clear()
	c.FillRect(0, 0, 1, 1, 1)
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;2H") {
		t.Fatalf("cleared cell not repainted: %q", third.String())
	}
	if strings.Contains(third.String(), "\033[1;1H") {
		t.Fatalf("unchanged cell repainted: %q", third.String())
	}

	c.ForceRedraw()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if strings.Count(fourth.String(), "H") < 8 {
		t.Fatalf("forced redraw did not repaint every cell: %q", fourth.String())
	}
}

func TestChunkWriterOffsetsAndFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 5)
	cw.WriteAt(1, 1, "hi")
	if out.Len() != 0 {
		t.Fatalf("wrote before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[6;11Hhi" {
		t.Fatalf("output = %q", got)
	}
	if cw.Len() != 0 {
		t.Fatalf("buffer not reset")
	}

	out.Reset()
	big := strings.Repeat("x", 5000)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != big {
		t.Fatalf("large flush lost data: %d bytes", out.Len())
	}
}

func TestWriteCentered(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteCentered(10, 3, "ab\nabcd")
	_ = cw.Flush()
	if got := out.String(); got != "\033[3;5Hab\033[4;4Habcd" {
		t.Fatalf("output = %q", got)
	}
}
