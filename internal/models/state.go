package models

import (
	"encoding"
	"fmt"
)

// CardState is the learning stage of a card. It is derived from the
// scheduling fields after every review and is never set by callers.
type CardState int

const (
	StateNew      CardState = iota // never reviewed
	StateLearning                  // repetition ramp-up (including post-lapse)
	StateReview                    // regular review cycle, interval below mature threshold
	StateMature                    // long-interval, well retained
	StateLapsed                    // last response was a lapse; transient, for UI emphasis
)

var stateNames = [...]string{
	StateNew:      "new",
	StateLearning: "learning",
	StateReview:   "review",
	StateMature:   "mature",
	StateLapsed:   "lapsed",
}

var stateByName = map[string]CardState{
	"new":      StateNew,
	"learning": StateLearning,
	"review":   StateReview,
	"mature":   StateMature,
	"lapsed":   StateLapsed,
}

var (
	_ fmt.Stringer             = CardState(0)
	_ encoding.TextMarshaler   = CardState(0)
	_ encoding.TextUnmarshaler = (*CardState)(nil)
)

func (s CardState) isValid() bool {
	return s >= StateNew && s <= StateLapsed
}

func (s CardState) String() string {
	if s.isValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("CardState(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler, so states serialize as
// their names in JSON and in the database.
func (s CardState) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("invalid card state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CardState) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown card state: %q", string(text))
	}
	*s = v
	return nil
}

// ParseCardState converts a stored state name back into a CardState.
func ParseCardState(name string) (CardState, error) {
	var s CardState
	if err := s.UnmarshalText([]byte(name)); err != nil {
		return StateNew, err
	}
	return s, nil
}
