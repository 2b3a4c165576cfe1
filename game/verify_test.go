package game

import (
	"testing"
)

func TestVerifyDeterminism(t *testing.T) {
	tests := []struct {
		name    string
		workers []int
	}{
		{"single count", []int{4}},
		{"one against many", []int{1, 8}},
		{"several", []int{1, 2, 5, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := randomScenario(11, 33, 29, 25)
			if err := VerifyDeterminism(sc, Options{}, tt.workers); err != nil {
				t.Errorf("VerifyDeterminism error: %v", err)
			}
		})
	}
}

func TestVerifyDeterminismIgnoresThreshold(t *testing.T) {
	sc := randomScenario(12, 6, 6, 10)
	base := Options{ParallelThreshold: 1000}
	if err := VerifyDeterminism(sc, base, []int{1, 6}); err != nil {
		t.Errorf("VerifyDeterminism error: %v", err)
	}
}
