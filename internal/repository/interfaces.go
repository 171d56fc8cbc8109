package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/models"
)

// Sentinel errors shared by all repository implementations.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrConflict means a version-guarded update lost against a
	// concurrent writer. The caller should reload and retry; the stale
	// write is never applied silently.
	ErrConflict = errors.New("repository: concurrent modification")
)

// CardRepository handles card scheduling state and the review log.
type CardRepository interface {
	Insert(ctx context.Context, card models.Card) error
	// Update persists a card guarded by its version stamp and bumps the
	// version. A stale version yields ErrConflict.
	Update(ctx context.Context, card models.Card) error
	Get(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]models.Card, error)
	List(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	InsertReviewLog(ctx context.Context, resp models.ReviewResponse) error
	ReviewLogSince(ctx context.Context, learnerID int64, since time.Time) ([]models.ReviewResponse, error)
}

// LearnerRepository handles learner data access.
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Upsert(ctx context.Context, username string) (*models.Learner, error)
	Delete(ctx context.Context, id int64) error
}

// WordRepository handles learning-item references. Content generation
// lives elsewhere; this stores only what cards point at.
type WordRepository interface {
	Insert(ctx context.Context, word models.Word) (int64, error)
	Get(ctx context.Context, id int64) (*models.Word, error)
	ListByLearner(ctx context.Context, learnerID int64) ([]models.Word, error)
}

// ProgressRepository caches derived progress reports so dashboards do
// not recompute them on every request.
type ProgressRepository interface {
	SaveSnapshot(ctx context.Context, report models.ProgressReport) error
	GetSnapshot(ctx context.Context, learnerID int64) (*models.ProgressReport, error)
}
