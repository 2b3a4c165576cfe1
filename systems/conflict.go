package systems

import "github.com/pthm-cable/warren/components"

// Contender is an entity competing for a cell, tagged with the storage index
// it moved from. From is only meaningful for entities that moved this phase.
type Contender struct {
	Entity components.Entity
	From   int
}

// RabbitWins reports whether a moving rabbit displaces the incumbent.
// Older rabbits win; equal ages go to the rabbit that left the lower index.
func RabbitWins(challenger, incumbent Contender) bool {
	inc := incumbent.Entity
	if inc.Kind == components.KindEmpty {
		return true
	}
	ch := challenger.Entity
	if ch.Age != inc.Age {
		return ch.Age > inc.Age
	}
	return challenger.From < incumbent.From
}

// FoxWins reports whether a moving fox displaces the incumbent.
// A fox always takes an empty or rabbit cell. Against another fox the older
// one wins, then the less hungry one, then the one that left the lower index.
func FoxWins(challenger, incumbent Contender) bool {
	inc := incumbent.Entity
	switch inc.Kind {
	case components.KindEmpty, components.KindRabbit:
		return true
	}
	ch := challenger.Entity
	if ch.Age != inc.Age {
		return ch.Age > inc.Age
	}
	if ch.Hunger != inc.Hunger {
		return ch.Hunger < inc.Hunger
	}
	return challenger.From < incumbent.From
}

// Wins dispatches on the challenger's kind.
func Wins(challenger, incumbent Contender) bool {
	switch challenger.Entity.Kind {
	case components.KindRabbit:
		return RabbitWins(challenger, incumbent)
	case components.KindFox:
		return FoxWins(challenger, incumbent)
	}
	return false
}
