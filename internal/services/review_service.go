package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/review"
	"github.com/avelar/wordflash/internal/srs"
)

// ReviewService handles due-card selection and review submission
type ReviewService interface {
	// DueCards loads the learner's cards and returns the ordered review
	// queue for right now.
	DueCards(ctx context.Context, learnerID int64, limit int) ([]models.Card, error)

	// NewSession builds an unstarted session whose persistence is wired
	// to the card store.
	NewSession() *review.Session

	// ReviewCard applies one graded response to a single card outside a
	// session (the stateless HTTP path).
	ReviewCard(ctx context.Context, cardID uuid.UUID, learnerID int64, quality int, timeSeconds float64) (*models.Card, error)
}

type reviewService struct {
	cards  repository.CardRepository
	params srs.Params
}

// NewReviewService creates a new ReviewService
func NewReviewService(cards repository.CardRepository, params srs.Params) ReviewService {
	return &reviewService{cards: cards, params: params.Normalize()}
}

func (s *reviewService) DueCards(ctx context.Context, learnerID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting due cards: learner_id=%d, limit=%d", learnerID, limit)

	all, err := s.cards.ListByLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	queue := review.DueCards(all, time.Now(), limit, s.params)
	log.Debug("queue built: %d of %d cards due", len(queue), len(all))
	return queue, nil
}

func (s *reviewService) NewSession() *review.Session {
	return review.NewSession(&sessionStore{cards: s.cards}, s.params)
}

func (s *reviewService) ReviewCard(ctx context.Context, cardID uuid.UUID, learnerID int64, quality int, timeSeconds float64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: card_id=%s, quality=%d", cardID, quality)

	card, err := s.cards.Get(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("card", cardID)
		}
		log.Error("failed to get card: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	if card.LearnerID != learnerID {
		return nil, apperrors.NewNotFoundError("card", cardID)
	}

	now := time.Now()
	updated, err := srs.Advance(*card, quality, now, s.params)
	if err != nil {
		switch {
		case errors.Is(err, srs.ErrQualityOutOfRange):
			return nil, apperrors.NewValidationError("quality", err.Error())
		case errors.Is(err, srs.ErrCorruptCard):
			return nil, apperrors.NewValidationError("card", err.Error())
		}
		return nil, apperrors.NewInternalError(err)
	}

	log.Debug("applied review, new interval=%d days, ease_factor=%.2f, state=%s",
		updated.IntervalDays, updated.EaseFactor, updated.State)

	if err := s.cards.Update(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.NewConflictError("card", cardID)
		}
		log.Error("failed to update card: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	// Store the response for analytics (non-blocking).
	resp := models.ReviewResponse{
		CardID:      cardID,
		LearnerID:   learnerID,
		Quality:     quality,
		TimeSeconds: timeSeconds,
		ReviewedAt:  now,
	}
	if err := s.cards.InsertReviewLog(ctx, resp); err != nil {
		log.Warn("failed to store review log: %v", err)
		// Don't fail the review if log storage fails
	}

	return &updated, nil
}

// sessionStore adapts CardRepository to the narrow store a session needs.
type sessionStore struct {
	cards repository.CardRepository
}

func (a *sessionStore) SaveCard(ctx context.Context, card models.Card) error {
	return a.cards.Update(ctx, card)
}

func (a *sessionStore) SaveReviewLog(ctx context.Context, resp models.ReviewResponse) error {
	return a.cards.InsertReviewLog(ctx, resp)
}
