// Package components defines the cell occupants of the simulation grid.
package components

// Kind identifies what occupies a grid cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindRabbit
	KindFox
	KindRock
)

// NumKinds is the number of distinct kinds.
const NumKinds = 4

var kindNames = [NumKinds]string{"EMPTY", "RABBIT", "FOX", "ROCK"}

var kindSymbols = [NumKinds]rune{' ', 'R', 'F', '*'}

// String returns the upper-case name used in scenario files.
func (k Kind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Symbol returns the single character used when drawing the grid.
func (k Kind) Symbol() rune {
	if int(k) < NumKinds {
		return kindSymbols[k]
	}
	return '?'
}

// ParseKind maps a scenario name to a Kind.
// Unrecognised names map to KindEmpty.
func ParseKind(s string) Kind {
	switch s {
	case "ROCK":
		return KindRock
	case "RABBIT":
		return KindRabbit
	case "FOX":
		return KindFox
	}
	return KindEmpty
}

// Entity is the value stored in a grid cell.
// Age counts generations since birth or last reproduction; Hunger counts
// generations since a fox last ate. Both are zero for rocks and empty cells.
type Entity struct {
	Kind   Kind
	Age    int32
	Hunger int32
}

// Empty is the zero entity.
var Empty = Entity{}

// Rock is the immovable sentinel entity.
var Rock = Entity{Kind: KindRock}

// New returns a newborn entity of the given kind.
func New(k Kind) Entity {
	return Entity{Kind: k}
}

// IsEmpty reports whether the cell holds nothing.
func (e Entity) IsEmpty() bool {
	return e.Kind == KindEmpty
}
