package models

import "time"

// CardFilter narrows card listings. Zero fields are ignored.
type CardFilter struct {
	LearnerID int64
	States    []CardState
	DueBefore *time.Time
	MinLapses int
	Limit     int
}
