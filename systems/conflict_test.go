package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func rabbitAt(age int32, from int) Contender {
	return Contender{Entity: components.Entity{Kind: components.KindRabbit, Age: age}, From: from}
}

func foxAt(age, hunger int32, from int) Contender {
	return Contender{Entity: components.Entity{Kind: components.KindFox, Age: age, Hunger: hunger}, From: from}
}

var emptyCell = Contender{Entity: components.Empty}

func TestRabbitWins(t *testing.T) {
	tests := []struct {
		name       string
		challenger Contender
		incumbent  Contender
		want       bool
	}{
		{"empty cell", rabbitAt(0, 9), emptyCell, true},
		{"older challenger", rabbitAt(5, 9), rabbitAt(3, 1), true},
		{"younger challenger", rabbitAt(3, 1), rabbitAt(5, 9), false},
		{"tie lower origin", rabbitAt(4, 1), rabbitAt(4, 9), true},
		{"tie higher origin", rabbitAt(4, 9), rabbitAt(4, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RabbitWins(tt.challenger, tt.incumbent); got != tt.want {
				t.Errorf("RabbitWins = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFoxWins(t *testing.T) {
	tests := []struct {
		name       string
		challenger Contender
		incumbent  Contender
		want       bool
	}{
		{"empty cell", foxAt(0, 0, 9), emptyCell, true},
		{"eats rabbit", foxAt(0, 0, 9), rabbitAt(10, 1), true},
		{"older fox", foxAt(3, 2, 9), foxAt(2, 0, 1), true},
		{"younger fox", foxAt(2, 0, 1), foxAt(3, 2, 9), false},
		{"same age less hungry", foxAt(2, 1, 9), foxAt(2, 3, 1), true},
		{"same age hungrier", foxAt(2, 3, 1), foxAt(2, 1, 9), false},
		{"full tie lower origin", foxAt(2, 1, 1), foxAt(2, 1, 9), true},
		{"full tie higher origin", foxAt(2, 1, 9), foxAt(2, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FoxWins(tt.challenger, tt.incumbent); got != tt.want {
				t.Errorf("FoxWins = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWinsDispatch(t *testing.T) {
	if !Wins(rabbitAt(1, 0), emptyCell) {
		t.Error("rabbit should take an empty cell")
	}
	if !Wins(foxAt(0, 0, 0), rabbitAt(5, 1)) {
		t.Error("fox should take a rabbit cell")
	}
	if Wins(emptyCell, emptyCell) {
		t.Error("empty challenger should never win")
	}
}

// settleAll runs contenders through Wins in the given order and returns the
// one left in the cell.
func settleAll(order []Contender) Contender {
	cell := emptyCell
	for _, c := range order {
		if Wins(c, cell) {
			cell = c
		}
	}
	return cell
}

func permutations(cs []Contender) [][]Contender {
	if len(cs) <= 1 {
		return [][]Contender{append([]Contender(nil), cs...)}
	}
	var out [][]Contender
	for i := range cs {
		rest := make([]Contender, 0, len(cs)-1)
		rest = append(rest, cs[:i]...)
		rest = append(rest, cs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Contender{cs[i]}, p...))
		}
	}
	return out
}

func TestResolutionOrderIndependent(t *testing.T) {
	tests := []struct {
		name       string
		contenders []Contender
		want       Contender
	}{
		{
			"rabbits",
			[]Contender{rabbitAt(3, 5), rabbitAt(5, 7), rabbitAt(5, 2), rabbitAt(1, 0)},
			rabbitAt(5, 2),
		},
		{
			"foxes",
			[]Contender{foxAt(2, 3, 1), foxAt(2, 1, 8), foxAt(2, 1, 4), foxAt(1, 0, 0)},
			foxAt(2, 1, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, order := range permutations(tt.contenders) {
				if got := settleAll(order); got != tt.want {
					t.Fatalf("order %v settled on %+v, want %+v", order, got, tt.want)
				}
			}
		})
	}
}
