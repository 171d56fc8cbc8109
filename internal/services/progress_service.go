package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/progress"
	"github.com/avelar/wordflash/internal/repository"
)

// logHistoryWindow bounds how far back the review log is read when
// computing streaks and trends.
const logHistoryWindow = 365 * 24 * time.Hour

// ProgressService handles learner-level reporting
type ProgressService interface {
	// GetReport returns the cached snapshot, computing a fresh one when
	// none exists yet.
	GetReport(ctx context.Context, learnerID int64) (*models.ProgressReport, error)

	// RefreshReport recomputes the report from cards and the review log
	// and caches it.
	RefreshReport(ctx context.Context, learnerID int64) (*models.ProgressReport, error)
}

type progressService struct {
	cards     repository.CardRepository
	snapshots repository.ProgressRepository
}

// NewProgressService creates a new ProgressService
func NewProgressService(cards repository.CardRepository, snapshots repository.ProgressRepository) ProgressService {
	return &progressService{cards: cards, snapshots: snapshots}
}

func (s *progressService) GetReport(ctx context.Context, learnerID int64) (*models.ProgressReport, error) {
	log := logger.FromContext(ctx)

	report, err := s.snapshots.GetSnapshot(ctx, learnerID)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		log.Error("failed to load progress snapshot: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	log.Debug("no progress snapshot for learner_id=%d, computing", learnerID)
	return s.RefreshReport(ctx, learnerID)
}

func (s *progressService) RefreshReport(ctx context.Context, learnerID int64) (*models.ProgressReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("refreshing progress report: learner_id=%d", learnerID)

	cards, err := s.cards.ListByLearner(ctx, learnerID)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	now := time.Now()
	history, err := s.cards.ReviewLogSince(ctx, learnerID, now.Add(-logHistoryWindow))
	if err != nil {
		log.Error("failed to load review log: %v", err)
		return nil, apperrors.NewInternalError(err)
	}

	report := progress.BuildReport(learnerID, cards, history, now)

	if err := s.snapshots.SaveSnapshot(ctx, report); err != nil {
		log.Warn("failed to cache progress snapshot: %v", err)
		// The computed report is still valid; caching is best-effort.
	}

	return &report, nil
}
