package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// CardRepositoryMock implements repository.CardRepository with
// overridable functions for service-level tests.
type CardRepositoryMock struct {
	InsertFunc         func(ctx context.Context, card models.Card) error
	UpdateFunc         func(ctx context.Context, card models.Card) error
	GetFunc            func(ctx context.Context, id uuid.UUID) (*models.Card, error)
	ListByLearnerFunc  func(ctx context.Context, learnerID int64) ([]models.Card, error)
	ListFunc           func(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
	InsertReviewFunc   func(ctx context.Context, resp models.ReviewResponse) error
	ReviewLogSinceFunc func(ctx context.Context, learnerID int64, since time.Time) ([]models.ReviewResponse, error)
}

var _ repository.CardRepository = (*CardRepositoryMock)(nil)

func (m *CardRepositoryMock) Insert(ctx context.Context, card models.Card) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, card)
	}
	return nil
}

func (m *CardRepositoryMock) Update(ctx context.Context, card models.Card) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, card)
	}
	return nil
}

func (m *CardRepositoryMock) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *CardRepositoryMock) ListByLearner(ctx context.Context, learnerID int64) ([]models.Card, error) {
	if m.ListByLearnerFunc != nil {
		return m.ListByLearnerFunc(ctx, learnerID)
	}
	return nil, nil
}

func (m *CardRepositoryMock) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *CardRepositoryMock) InsertReviewLog(ctx context.Context, resp models.ReviewResponse) error {
	if m.InsertReviewFunc != nil {
		return m.InsertReviewFunc(ctx, resp)
	}
	return nil
}

func (m *CardRepositoryMock) ReviewLogSince(ctx context.Context, learnerID int64, since time.Time) ([]models.ReviewResponse, error) {
	if m.ReviewLogSinceFunc != nil {
		return m.ReviewLogSinceFunc(ctx, learnerID, since)
	}
	return nil, nil
}
