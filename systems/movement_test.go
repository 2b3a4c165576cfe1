package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestSelectDirection(t *testing.T) {
	tests := []struct {
		row, col, gen, n int
		want             int
	}{
		{2, 2, 0, 4, 2},
		{2, 2, 1, 4, 3},
		{2, 2, 2, 4, 0},
		{0, 0, 0, 4, 2},  // -2 mod 4
		{0, 0, 0, 3, 1},  // -2 mod 3
		{0, 1, 0, 1, 0},  // single choice
		{5, 7, 11, 2, 1}, // 21 mod 2
	}

	for _, tt := range tests {
		if got := SelectDirection(tt.row, tt.col, tt.gen, tt.n); got != tt.want {
			t.Errorf("SelectDirection(%d, %d, %d, %d) = %d, want %d",
				tt.row, tt.col, tt.gen, tt.n, got, tt.want)
		}
	}
}

func TestSelectDirectionInRange(t *testing.T) {
	for n := 1; n <= NumDirections; n++ {
		for row := 0; row < 6; row++ {
			for col := 0; col < 6; col++ {
				for gen := 0; gen < 6; gen++ {
					if v := SelectDirection(row, col, gen, n); v < 0 || v >= n {
						t.Fatalf("SelectDirection(%d, %d, %d, %d) = %d out of range", row, col, gen, n, v)
					}
				}
			}
		}
	}
}

func TestRabbitMove(t *testing.T) {
	tests := []struct {
		name     string
		rocks    [][2]int
		gen      int
		want     [2]int // logical target
		wantMove bool
	}{
		{"all open picks south", nil, 0, [2]int{3, 2}, true},
		{"all open next generation picks west", nil, 1, [2]int{2, 1}, true},
		{"north blocked", [][2]int{{1, 2}}, 0, [2]int{2, 1}, true}, // E,S,W -> index 2
		{"boxed in", [][2]int{{1, 2}, {2, 3}, {3, 2}, {2, 1}}, 0, [2]int{2, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(5, 5)
			g.Place(2, 2, components.New(components.KindRabbit))
			for _, r := range tt.rocks {
				g.Place(r[0], r[1], components.Rock)
			}

			tr, tc, ok := RabbitMove(g, 3, 3, tt.gen)
			if ok != tt.wantMove {
				t.Fatalf("ok = %v, want %v", ok, tt.wantMove)
			}
			if tr-1 != tt.want[0] || tc-1 != tt.want[1] {
				t.Errorf("target = (%d, %d), want %v", tr-1, tc-1, tt.want)
			}
		})
	}
}

func TestRabbitMoveRespectsBorder(t *testing.T) {
	g := NewGrid(1, 1)
	g.Place(0, 0, components.New(components.KindRabbit))

	for gen := 0; gen < 4; gen++ {
		if _, _, ok := RabbitMove(g, 1, 1, gen); ok {
			t.Fatalf("generation %d: rabbit moved into the border", gen)
		}
	}
}

func TestFoxHunt(t *testing.T) {
	g := NewGrid(5, 5)
	g.Place(2, 2, components.New(components.KindFox))
	g.Place(1, 2, components.New(components.KindRabbit)) // N
	g.Place(2, 1, components.New(components.KindRabbit)) // W

	// Admissible: N, W. Index (2+2-2+gen) mod 2.
	tests := []struct {
		gen  int
		want [2]int
	}{
		{0, [2]int{1, 2}},
		{1, [2]int{2, 1}},
	}
	for _, tt := range tests {
		tr, tc, ok := FoxHunt(g, 3, 3, tt.gen)
		if !ok {
			t.Fatalf("generation %d: no hunt", tt.gen)
		}
		if tr-1 != tt.want[0] || tc-1 != tt.want[1] {
			t.Errorf("generation %d: target = (%d, %d), want %v", tt.gen, tr-1, tc-1, tt.want)
		}
	}

	g2 := NewGrid(3, 3)
	g2.Place(1, 1, components.New(components.KindFox))
	if _, _, ok := FoxHunt(g2, 2, 2, 0); ok {
		t.Error("hunt without rabbits reported ok")
	}
}

func TestDirectionOffsets(t *testing.T) {
	tests := []struct {
		d      Direction
		dr, dc int
	}{
		{North, -1, 0},
		{East, 0, 1},
		{South, 1, 0},
		{West, 0, -1},
	}
	for _, tt := range tests {
		dr, dc := tt.d.Offset()
		if dr != tt.dr || dc != tt.dc {
			t.Errorf("Offset(%d) = (%d, %d), want (%d, %d)", tt.d, dr, dc, tt.dr, tt.dc)
		}
	}
}
