package srs

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/models"
)

// NewCard creates the scheduling state for a word that was just selected
// for study. New cards are due immediately.
func NewCard(learnerID, wordID int64, now time.Time, params Params) models.Card {
	params = params.Normalize()
	return models.Card{
		ID:           uuid.New(),
		LearnerID:    learnerID,
		WordID:       wordID,
		EaseFactor:   params.StartingEaseFactor,
		NextReviewAt: now,
		State:        models.StateNew,
		CreatedAt:    now,
	}
}

// Advance applies one graded review to a card and returns the updated
// copy. The input card is never mutated, so callers can keep reading the
// pre-update value concurrently. The function is deterministic: the
// review timestamp is a parameter, not an implicit clock read.
func Advance(card models.Card, quality int, reviewedAt time.Time, params Params) (models.Card, error) {
	params = params.Normalize()

	if quality < MinQuality || quality > MaxQuality {
		return models.Card{}, fmt.Errorf("%w: got %d, want %d..%d",
			ErrQualityOutOfRange, quality, MinQuality, MaxQuality)
	}
	if card.EaseFactor < params.MinEaseFactor {
		return models.Card{}, fmt.Errorf("%w: ease factor %.3f below minimum %.2f",
			ErrCorruptCard, card.EaseFactor, params.MinEaseFactor)
	}

	next := card

	// SM-2 ease update, applied on every response.
	// EF' = EF + (0.1 - (4-q)*(0.08 + (4-q)*0.02)), floored at the minimum.
	miss := float64(MaxQuality - quality)
	next.EaseFactor = card.EaseFactor + (0.1 - miss*(0.08+miss*0.02))
	if next.EaseFactor < params.MinEaseFactor {
		next.EaseFactor = params.MinEaseFactor
	}

	lapsed := quality < CorrectThreshold
	if lapsed {
		next.RepetitionNumber = 0
		next.IntervalDays = 1
		next.Lapses++
		next.ConsecutiveCorrect = 0
	} else {
		next.RepetitionNumber++
		next.ConsecutiveCorrect++
		switch {
		case next.RepetitionNumber == 1:
			next.IntervalDays = 1
		case next.RepetitionNumber == 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Round(float64(card.IntervalDays) * next.EaseFactor))
		}
	}

	next.TotalReviews++
	reviewed := reviewedAt
	next.LastReviewedAt = &reviewed
	next.NextReviewAt = reviewedAt.AddDate(0, 0, next.IntervalDays)
	next.State = deriveState(next, lapsed, params)

	return next, nil
}

// deriveState computes the card state from the already-updated numeric
// fields. It is pure: calling it twice on the same fields yields the
// same state.
func deriveState(card models.Card, lapsedNow bool, params Params) models.CardState {
	switch {
	case card.TotalReviews == 0:
		return models.StateNew
	case lapsedNow:
		// Transient; the next review downgrades it to Learning or better.
		return models.StateLapsed
	case card.RepetitionNumber >= 3 && card.IntervalDays >= params.MatureThresholdDays:
		return models.StateMature
	case card.RepetitionNumber >= 3:
		return models.StateReview
	default:
		return models.StateLearning
	}
}
