// Package scenario reads initial worlds and writes final reports in the plain
// text format:
//
//	GEN_PROC_RABBITS GEN_PROC_FOXES GEN_FOOD_FOXES N_GEN WIDTH HEIGHT N
//	KIND row col
//	...
//
// with N entity lines using 0-based logical coordinates.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
)

var (
	// ErrHeader is wrapped when the header line is missing or malformed.
	ErrHeader = errors.New("bad scenario header")
	// ErrEntity is wrapped when an entity line is missing or malformed.
	ErrEntity = errors.New("bad entity line")
	// ErrOutOfRange is wrapped when an entity lies outside the grid.
	ErrOutOfRange = errors.New("entity out of range")
)

// Placement is one entity at logical coordinates.
type Placement struct {
	Kind     components.Kind
	Row, Col int
}

// Scenario is an initial world.
type Scenario struct {
	Params   config.SimulationConfig
	Width    int
	Height   int
	Entities []Placement
}

// Result is the report written after a run.
type Result struct {
	Params   config.SimulationConfig
	Width    int
	Height   int
	Count    int
	Entities []Placement
}

// tokenReader pulls whitespace-separated fields.
type tokenReader struct {
	sc *bufio.Scanner
}

func (t *tokenReader) next() (string, error) {
	if t.sc.Scan() {
		return t.sc.Text(), nil
	}
	if err := t.sc.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (t *tokenReader) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

// Parse reads a scenario. Unknown entity kinds become Empty placements.
func Parse(r io.Reader) (*Scenario, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	tr := &tokenReader{sc: sc}

	var header [7]int
	names := [7]string{"GEN_PROC_RABBITS", "GEN_PROC_FOXES", "GEN_FOOD_FOXES", "N_GEN", "WIDTH", "HEIGHT", "N"}
	for i := range header {
		v, err := tr.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrHeader, names[i], err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: %s must be >= 0, got %d", ErrHeader, names[i], v)
		}
		header[i] = v
	}

	s := &Scenario{
		Params: config.SimulationConfig{
			GenProcRabbits: header[0],
			GenProcFoxes:   header[1],
			GenFoodFoxes:   header[2],
			Generations:    header[3],
		},
		Width:  header[4],
		Height: header[5],
	}
	if err := s.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeader, err)
	}

	count := header[6]
	s.Entities = make([]Placement, 0, count)
	for i := 0; i < count; i++ {
		name, err := tr.next()
		if err != nil {
			return nil, fmt.Errorf("%w %d: %v", ErrEntity, i+1, err)
		}
		row, err := tr.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w %d: row: %v", ErrEntity, i+1, err)
		}
		col, err := tr.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w %d: col: %v", ErrEntity, i+1, err)
		}
		if row < 0 || row >= s.Height || col < 0 || col >= s.Width {
			return nil, fmt.Errorf("%w: %s at (%d, %d) outside %dx%d grid",
				ErrOutOfRange, name, row, col, s.Height, s.Width)
		}
		s.Entities = append(s.Entities, Placement{Kind: components.ParseKind(name), Row: row, Col: col})
	}

	return s, nil
}

func writeHeader(bw *bufio.Writer, p config.SimulationConfig, generations, width, height, count int) {
	fmt.Fprintf(bw, "%d %d %d %d %d %d %d\n",
		p.GenProcRabbits, p.GenProcFoxes, p.GenFoodFoxes, generations, width, height, count)
}

func writePlacements(bw *bufio.Writer, entities []Placement) {
	for _, e := range entities {
		fmt.Fprintf(bw, "%s %d %d\n", e.Kind, e.Row, e.Col)
	}
}

// Write emits s in the scenario format.
func Write(w io.Writer, s *Scenario) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, s.Params, s.Params.Generations, s.Width, s.Height, len(s.Entities))
	writePlacements(bw, s.Entities)
	return bw.Flush()
}

// WriteResult emits the final report. The header echoes the rules with zero
// generations left, so the report is itself a valid scenario.
func WriteResult(w io.Writer, r *Result) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, r.Params, 0, r.Width, r.Height, r.Count)
	writePlacements(bw, r.Entities)
	return bw.Flush()
}
