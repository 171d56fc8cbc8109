package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/srs"
	"github.com/avelar/wordflash/internal/testutil/mocks"
)

func storedCard(learnerID int64) *models.Card {
	return &models.Card{
		ID:           uuid.New(),
		LearnerID:    learnerID,
		WordID:       1,
		EaseFactor:   2.5,
		NextReviewAt: time.Now().Add(-time.Hour),
		TotalReviews: 2,
		Version:      3,
	}
}

func appErrorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestReviewCard(t *testing.T) {
	ctx := context.Background()
	card := storedCard(1)

	var savedCard *models.Card
	var savedLog *models.ReviewResponse
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, id uuid.UUID) (*models.Card, error) {
			assert.Equal(t, card.ID, id)
			c := *card
			return &c, nil
		},
		UpdateFunc: func(_ context.Context, c models.Card) error {
			savedCard = &c
			return nil
		},
		InsertReviewFunc: func(_ context.Context, resp models.ReviewResponse) error {
			savedLog = &resp
			return nil
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	updated, err := svc.ReviewCard(ctx, card.ID, 1, 4, 2.5)
	require.NoError(t, err)

	require.NotNil(t, savedCard)
	assert.Equal(t, 3, savedCard.TotalReviews)
	assert.Equal(t, updated.ID, savedCard.ID)
	assert.Equal(t, card.Version, savedCard.Version, "version stamp is carried into the guarded update")

	require.NotNil(t, savedLog)
	assert.Equal(t, card.ID, savedLog.CardID)
	assert.Equal(t, 4, savedLog.Quality)
	assert.Equal(t, 2.5, savedLog.TimeSeconds)
}

func TestReviewCardNotFound(t *testing.T) {
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*models.Card, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	_, err := svc.ReviewCard(context.Background(), uuid.New(), 1, 4, 1.0)

	assert.Equal(t, apperrors.ErrCodeNotFound, appErrorCode(t, err))
}

func TestReviewCardWrongLearner(t *testing.T) {
	card := storedCard(2)
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*models.Card, error) {
			c := *card
			return &c, nil
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	_, err := svc.ReviewCard(context.Background(), card.ID, 1, 4, 1.0)

	// Another learner's card is indistinguishable from a missing one.
	assert.Equal(t, apperrors.ErrCodeNotFound, appErrorCode(t, err))
}

func TestReviewCardInvalidQuality(t *testing.T) {
	card := storedCard(1)
	updateCalled := false
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*models.Card, error) {
			c := *card
			return &c, nil
		},
		UpdateFunc: func(_ context.Context, _ models.Card) error {
			updateCalled = true
			return nil
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	_, err := svc.ReviewCard(context.Background(), card.ID, 1, 9, 1.0)

	assert.Equal(t, apperrors.ErrCodeValidation, appErrorCode(t, err))
	assert.False(t, updateCalled)
}

func TestReviewCardConflict(t *testing.T) {
	card := storedCard(1)
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*models.Card, error) {
			c := *card
			return &c, nil
		},
		UpdateFunc: func(_ context.Context, _ models.Card) error {
			return repository.ErrConflict
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	_, err := svc.ReviewCard(context.Background(), card.ID, 1, 4, 1.0)

	assert.Equal(t, apperrors.ErrCodeConflict, appErrorCode(t, err))
}

func TestReviewCardLogFailureTolerated(t *testing.T) {
	card := storedCard(1)
	repo := &mocks.CardRepositoryMock{
		GetFunc: func(_ context.Context, _ uuid.UUID) (*models.Card, error) {
			c := *card
			return &c, nil
		},
		InsertReviewFunc: func(_ context.Context, _ models.ReviewResponse) error {
			return errors.New("log table locked")
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	updated, err := svc.ReviewCard(context.Background(), card.ID, 1, 4, 1.0)

	require.NoError(t, err)
	assert.Equal(t, 3, updated.TotalReviews)
}

func TestDueCards(t *testing.T) {
	now := time.Now()
	overdue := models.Card{
		ID:           uuid.New(),
		LearnerID:    1,
		TotalReviews: 2,
		NextReviewAt: now.Add(-48 * time.Hour),
	}
	notDue := models.Card{
		ID:           uuid.New(),
		LearnerID:    1,
		TotalReviews: 2,
		NextReviewAt: now.Add(72 * time.Hour),
	}
	repo := &mocks.CardRepositoryMock{
		ListByLearnerFunc: func(_ context.Context, learnerID int64) ([]models.Card, error) {
			assert.Equal(t, int64(1), learnerID)
			return []models.Card{notDue, overdue}, nil
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	queue, err := svc.DueCards(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, queue, 1)
	assert.Equal(t, overdue.ID, queue[0].ID)
}

func TestDueCardsRepositoryError(t *testing.T) {
	repo := &mocks.CardRepositoryMock{
		ListByLearnerFunc: func(_ context.Context, _ int64) ([]models.Card, error) {
			return nil, errors.New("db closed")
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	_, err := svc.DueCards(context.Background(), 1, 10)

	assert.Equal(t, apperrors.ErrCodeInternal, appErrorCode(t, err))
}

func TestNewSessionWiredToStore(t *testing.T) {
	ctx := context.Background()
	saved := 0
	repo := &mocks.CardRepositoryMock{
		UpdateFunc: func(_ context.Context, _ models.Card) error {
			saved++
			return nil
		},
	}

	svc := NewReviewService(repo, srs.DefaultParams())
	sess := svc.NewSession()

	card := storedCard(1)
	require.NoError(t, sess.Start([]models.Card{*card}))
	require.NoError(t, sess.RevealAnswer())
	require.NoError(t, sess.SubmitResponse(ctx, 4, 1.0))

	assert.Equal(t, 1, saved)
}
