// Package render draws the simulation grid as text, either as a framed ASCII
// map or live in a terminal.
package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/pthm-cable/warren/components"
)

// View is the read-only grid access the renderers need.
type View interface {
	// Size returns the interior dimensions as (width, height).
	Size() (int, int)
	// KindAt returns the occupant kind at logical coordinates.
	KindAt(row, col int) components.Kind
}

// WriteASCII writes v as a map framed by '-' and '|', one character per cell.
func WriteASCII(w io.Writer, v View) error {
	width, height := v.Size()
	bw := bufio.NewWriter(w)

	rule := strings.Repeat("-", width+2)
	bw.WriteString(rule)
	bw.WriteByte('\n')
	for r := 0; r < height; r++ {
		bw.WriteByte('|')
		for c := 0; c < width; c++ {
			bw.WriteRune(v.KindAt(r, c).Symbol())
		}
		bw.WriteString("|\n")
	}
	bw.WriteString(rule)
	bw.WriteByte('\n')

	return bw.Flush()
}
