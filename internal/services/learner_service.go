package services

import (
	"context"
	"errors"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

// LearnerService handles learner-related business logic
type LearnerService interface {
	GetLearner(ctx context.Context, id int64) (*models.Learner, error)
	ListLearners(ctx context.Context) ([]models.Learner, error)
	CreateLearner(ctx context.Context, username string) (*models.Learner, error)
	DeleteLearner(ctx context.Context, id int64) error
}

type learnerService struct {
	learners repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learners repository.LearnerRepository) LearnerService {
	return &learnerService{learners: learners}
}

func (s *learnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	learner, err := s.learners.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("learner", id)
		}
		logger.FromContext(ctx).Error("failed to get learner: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return learner, nil
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	learners, err := s.learners.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list learners: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return learners, nil
}

func (s *learnerService) CreateLearner(ctx context.Context, username string) (*models.Learner, error) {
	log := logger.FromContext(ctx)

	if username == "" {
		return nil, apperrors.NewValidationError("username", "cannot be empty")
	}

	learner, err := s.learners.Upsert(ctx, username)
	if err != nil {
		log.Error("failed to upsert learner: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	log.Info("learner ready: id=%d, username=%s", learner.ID, learner.Username)
	return learner, nil
}

func (s *learnerService) DeleteLearner(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting learner: id=%d", id)

	if err := s.learners.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundError("learner", id)
		}
		log.Error("failed to delete learner: %v", err)
		return apperrors.NewInternalError(err)
	}
	return nil
}
