package models

import (
	"time"

	"github.com/google/uuid"
)

// Card holds the scheduling state for one (learner, word) pair.
// All scheduling fields are owned by the srs package; callers treat a
// Card as an opaque value and never set State directly.
type Card struct {
	ID                 uuid.UUID  `json:"id"`
	LearnerID          int64      `json:"learner_id"`
	WordID             int64      `json:"word_id"`
	EaseFactor         float64    `json:"ease_factor"`
	RepetitionNumber   int        `json:"repetition_number"`
	IntervalDays       int        `json:"interval_days"`
	NextReviewAt       time.Time  `json:"next_review_at"`
	LastReviewedAt     *time.Time `json:"last_reviewed_at,omitempty"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	TotalReviews       int        `json:"total_reviews"`
	Lapses             int        `json:"lapses"`
	State              CardState  `json:"state"`
	Version            int64      `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
}

// IsNew reports whether the card has never been reviewed.
func (c Card) IsNew() bool {
	return c.TotalReviews == 0
}

// DueBy reports whether the card is eligible for review at the given time.
// New cards are always eligible.
func (c Card) DueBy(now time.Time) bool {
	return c.IsNew() || !c.NextReviewAt.After(now)
}

// ReviewResponse records a single graded recall attempt. It is appended to
// the review log for analytics; the Card itself is the primary state.
type ReviewResponse struct {
	ID          int64     `json:"id"`
	CardID      uuid.UUID `json:"card_id"`
	LearnerID   int64     `json:"learner_id"`
	Quality     int       `json:"quality"`
	TimeSeconds float64   `json:"time_seconds"`
	ReviewedAt  time.Time `json:"reviewed_at"`
}

// Correct reports whether the response counts as a successful recall.
func (r ReviewResponse) Correct() bool {
	return r.Quality >= 3
}
