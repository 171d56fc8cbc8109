package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/srs"
)

// CardService handles word and card lifecycle business logic
type CardService interface {
	// AddWord stores a new learning item and creates its card, due
	// immediately.
	AddWord(ctx context.Context, learnerID int64, term, translation string) (*models.Word, *models.Card, error)
	ListWords(ctx context.Context, learnerID int64) ([]models.Word, error)
	ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error)
}

type cardService struct {
	cards  repository.CardRepository
	words  repository.WordRepository
	params srs.Params
}

// NewCardService creates a new CardService
func NewCardService(cards repository.CardRepository, words repository.WordRepository, params srs.Params) CardService {
	return &cardService{cards: cards, words: words, params: params.Normalize()}
}

func (s *cardService) AddWord(ctx context.Context, learnerID int64, term, translation string) (*models.Word, *models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding word: learner_id=%d, term=%s", learnerID, term)

	if term == "" {
		return nil, nil, apperrors.NewValidationError("term", "cannot be empty")
	}

	word := models.Word{
		LearnerID:   learnerID,
		Term:        term,
		Translation: translation,
	}
	id, err := s.words.Insert(ctx, word)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return nil, nil, apperrors.NewInternalError(err)
	}
	word.ID = id
	word.CreatedAt = time.Now()

	card := srs.NewCard(learnerID, id, time.Now(), s.params)
	if err := s.cards.Insert(ctx, card); err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, nil, apperrors.NewInternalError(err)
	}

	log.Info("word added with card: word_id=%d, card_id=%s", id, card.ID)
	return &word, &card, nil
}

func (s *cardService) ListWords(ctx context.Context, learnerID int64) ([]models.Word, error) {
	words, err := s.words.ListByLearner(ctx, learnerID)
	if err != nil {
		logger.FromContext(ctx).Error("failed to list words: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return words, nil
}

func (s *cardService) ListCards(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	cards, err := s.cards.List(ctx, filter)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		logger.FromContext(ctx).Error("failed to list cards: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	return cards, nil
}
