package main

import (
	"strings"

	"github.com/joshuapare/cellvm/interp"
)

const (
	freeGlyph    = '.'
	unknownGlyph = '#'
)

// cellGlyphs returns one rune per cell: '.' for free cells, the first letter
// of the owning array's name for live cells.
func cellGlyphs(s interp.Snapshot) []rune {
	glyphs := make([]rune, s.Capacity)
	for i := range glyphs {
		glyphs[i] = unknownGlyph
	}
	for _, seg := range s.Free {
		for i := seg.Start; i < seg.End() && i < len(glyphs); i++ {
			glyphs[i] = freeGlyph
		}
	}
	for _, arr := range s.Arrays {
		g := rune(arr.Name[0])
		for i := arr.Start; i < arr.Start+arr.Len && i < len(glyphs); i++ {
			glyphs[i] = g
		}
	}
	return glyphs
}

// renderMap lays the cell glyphs out in rows of width cells, styling runs of
// free and live cells.
func renderMap(s interp.Snapshot, width int) string {
	if width < 1 {
		width = 1
	}
	glyphs := cellGlyphs(s)

	var b strings.Builder
	for row := 0; row < len(glyphs); row += width {
		end := min(row+width, len(glyphs))
		line := glyphs[row:end]

		for i := 0; i < len(line); {
			j := i
			free := line[i] == freeGlyph
			for j < len(line) && (line[j] == freeGlyph) == free {
				j++
			}
			run := string(line[i:j])
			if free {
				b.WriteString(freeCellStyle.Render(run))
			} else {
				b.WriteString(liveCellStyle.Render(run))
			}
			i = j
		}
		if end < len(glyphs) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
