package transform

import (
	"slices"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

// AssignCrewMembers pairs crew positions with personnel by index position,
// assigning exactly crewSize pairs in position order. crewSize must not
// exceed the length of either list.
func AssignCrewMembers(crewSize int, positions []string, personnel []*record.Record) *record.Record {
	crew := record.New()

	for i := 0; i < crewSize; i++ {
		crew.Set(positions[i], personnel[i])
	}

	return crew
}

// BoardPassengers returns the passengers permitted to board, capped at
// maxPassengers. A cap beyond the list length boards everyone.
func BoardPassengers(maxPassengers int, passengers []*record.Record) []*record.Record {
	if maxPassengers < 0 {
		maxPassengers = 0
	}

	if maxPassengers > len(passengers) {
		maxPassengers = len(passengers)
	}

	return slices.Clone(passengers[:maxPassengers])
}
