// Package termrender paints a highlight.HighlightEvent stream onto a
// tcell screen, advancing the cursor by grapheme cluster rather than by
// byte or rune so wide/combining glyphs stay aligned.
package termrender

import (
	"github.com/gdamore/tcell/v3"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/odvcencio/spanhighlight/highlight"
)

// StyleTable maps a Scope to the tcell style painted for it.
type StyleTable map[highlight.Scope]tcell.Style

// Lerp returns the color t of the way from from to to, blended in Lab
// space, for a fade effect between two scope colors (e.g.
// cursor-line emphasis) — go-colorful exists in this module for exactly
// this kind of perceptual blend, not byte-level rendering.
func Lerp(from, to tcell.Color, t float64) tcell.Color {
	fr, fg, fb := from.RGB()
	tr, tg, tb := to.RGB()
	a := colorful.Color{R: float64(fr) / 255, G: float64(fg) / 255, B: float64(fb) / 255}
	b := colorful.Color{R: float64(tr) / 255, G: float64(tg) / 255, B: float64(tb) / 255}
	c := a.BlendLab(b, t)
	r, g, bl := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(bl))
}

// Paint walks events against source and draws each Source window onto
// screen starting at (row, col), returning the column after the last
// glyph drawn. Each window is drawn in the style of the innermost open
// scope that has a StyleTable entry, or tcell.StyleDefault when no open
// scope has one.
func Paint(screen tcell.Screen, styles StyleTable, events []highlight.HighlightEvent, source []byte, row, col int) int {
	var stack []highlight.Scope
	currentStyle := func() tcell.Style {
		for i := len(stack) - 1; i >= 0; i-- {
			if style, ok := styles[stack[i]]; ok {
				return style
			}
		}
		return tcell.StyleDefault
	}

	for _, ev := range events {
		switch ev.Kind {
		case highlight.EventStart:
			stack = append(stack, ev.Scope)
		case highlight.EventEnd:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case highlight.EventSource:
			col = drawWindow(screen, currentStyle(), source[ev.Start:ev.End], row, col)
		}
	}
	return col
}

// drawWindow draws text starting at (row, col), advancing col by each
// grapheme cluster's display width.
func drawWindow(screen tcell.Screen, style tcell.Style, text []byte, row, col int) int {
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster []byte
		var width int
		cluster, remaining, width, state = uniseg.FirstGraphemeCluster(remaining, state)
		if width == 0 {
			width = runewidth.RuneWidth(firstRune(cluster))
		}
		screen.SetContent(col, row, firstRune(cluster), nil, style)
		col += width
	}
	return col
}

func firstRune(b []byte) rune {
	for _, r := range string(b) {
		return r
	}
	return ' '
}
