package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestNewGridBorder(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"square", 5, 5},
		{"wide", 7, 2},
		{"tall", 1, 6},
		{"single cell", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(tt.width, tt.height)
			if !g.BorderIntact() {
				t.Error("border not intact after NewGrid")
			}
			counts := g.Count()
			if counts[components.KindEmpty] != tt.width*tt.height {
				t.Errorf("empty interior cells = %d, want %d", counts[components.KindEmpty], tt.width*tt.height)
			}
			if g.Stride() != tt.width+2 {
				t.Errorf("Stride = %d, want %d", g.Stride(), tt.width+2)
			}
			if len(g.Current()) != (tt.width+2)*(tt.height+2) {
				t.Errorf("buffer length = %d, want %d", len(g.Current()), (tt.width+2)*(tt.height+2))
			}
		})
	}
}

func TestGridPlaceUsesLogicalCoordinates(t *testing.T) {
	g := NewGrid(4, 3)
	g.Place(0, 0, components.New(components.KindRabbit))
	g.Place(2, 3, components.New(components.KindFox))

	if k := g.At(1, 1).Kind; k != components.KindRabbit {
		t.Errorf("storage (1,1) = %v, want RABBIT", k)
	}
	if k := g.At(3, 4).Kind; k != components.KindFox {
		t.Errorf("storage (3,4) = %v, want FOX", k)
	}
	if k := g.KindAt(2, 3); k != components.KindFox {
		t.Errorf("KindAt(2,3) = %v, want FOX", k)
	}
	if k := g.Next()[g.Index(1, 1)].Kind; k != components.KindRabbit {
		t.Errorf("next buffer (1,1) = %v, want RABBIT", k)
	}
}

func TestGridCarryAndSwap(t *testing.T) {
	g := NewGrid(3, 2)
	g.Place(0, 1, components.Entity{Kind: components.KindRabbit, Age: 4})

	// Dirty the next buffer so the carry has something to overwrite.
	g.Next()[g.Index(1, 2)] = components.Empty
	g.Next()[g.Index(2, 1)] = components.New(components.KindFox)

	g.CarryRow(1)
	g.CarryRow(2)
	g.Swap()

	if e := g.EntityAt(0, 1); e.Kind != components.KindRabbit || e.Age != 4 {
		t.Errorf("carried rabbit = %+v, want rabbit aged 4", e)
	}
	if k := g.KindAt(1, 0); k != components.KindEmpty {
		t.Errorf("KindAt(1,0) = %v, want EMPTY after carry", k)
	}
	if !g.BorderIntact() {
		t.Error("border broken after carry and swap")
	}
}

func TestGridCount(t *testing.T) {
	g := NewGrid(3, 3)
	g.Place(0, 0, components.New(components.KindRabbit))
	g.Place(1, 1, components.New(components.KindRabbit))
	g.Place(2, 2, components.New(components.KindFox))
	g.Place(0, 2, components.Rock)

	counts := g.Count()
	want := [components.NumKinds]int{
		components.KindEmpty:  5,
		components.KindRabbit: 2,
		components.KindFox:    1,
		components.KindRock:   1,
	}
	if counts != want {
		t.Errorf("Count = %v, want %v", counts, want)
	}

	w, h := g.Size()
	if w != 3 || h != 3 {
		t.Errorf("Size = (%d, %d), want (3, 3)", w, h)
	}
}
