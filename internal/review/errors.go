package review

import "errors"

// State errors for session operations invoked at the wrong time.
// These are programmer errors and are never swallowed.
var (
	ErrNoCards           = errors.New("review: session needs at least one card")
	ErrAlreadyStarted    = errors.New("review: session already started")
	ErrNotStarted        = errors.New("review: session not started")
	ErrCompleted         = errors.New("review: session already completed")
	ErrAnswerNotRevealed = errors.New("review: answer not revealed")
)
