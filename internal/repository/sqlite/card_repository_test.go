package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/avelar/wordflash/internal/db"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
	"github.com/avelar/wordflash/internal/testutil"
)

type CardRepositorySuite struct {
	suite.Suite

	db        *db.DB
	repo      repository.CardRepository
	learnerID int64
}

func TestCardRepositorySuite(t *testing.T) {
	suite.Run(t, new(CardRepositorySuite))
}

func (s *CardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = NewCardRepository(s.db.DB)
	s.learnerID = testutil.SeedLearner(s.T(), s.db, "alice")
}

func (s *CardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *CardRepositorySuite) newCard(mutate func(*models.Card)) models.Card {
	wordID := testutil.SeedWord(s.T(), s.db, s.learnerID, uuid.NewString())

	card := models.Card{
		ID:           uuid.New(),
		LearnerID:    s.learnerID,
		WordID:       wordID,
		EaseFactor:   2.5,
		NextReviewAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		State:        models.StateNew,
		Version:      1,
		CreatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(&card)
	}
	return card
}

func (s *CardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	reviewed := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	card := s.newCard(func(c *models.Card) {
		c.EaseFactor = 2.36
		c.RepetitionNumber = 2
		c.IntervalDays = 6
		c.LastReviewedAt = &reviewed
		c.ConsecutiveCorrect = 2
		c.TotalReviews = 4
		c.Lapses = 1
		c.State = models.StateLearning
	})

	s.Require().NoError(s.repo.Insert(ctx, card))

	got, err := s.repo.Get(ctx, card.ID)
	s.Require().NoError(err)

	s.Equal(card.ID, got.ID)
	s.Equal(card.LearnerID, got.LearnerID)
	s.Equal(card.WordID, got.WordID)
	s.Equal(card.EaseFactor, got.EaseFactor)
	s.Equal(card.RepetitionNumber, got.RepetitionNumber)
	s.Equal(card.IntervalDays, got.IntervalDays)
	s.Equal(card.ConsecutiveCorrect, got.ConsecutiveCorrect)
	s.Equal(card.TotalReviews, got.TotalReviews)
	s.Equal(card.Lapses, got.Lapses)
	s.Equal(card.State, got.State)
	s.Equal(int64(1), got.Version)
	s.True(got.NextReviewAt.Equal(card.NextReviewAt))
	s.Require().NotNil(got.LastReviewedAt)
	s.True(got.LastReviewedAt.Equal(reviewed))
}

func (s *CardRepositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(context.Background(), uuid.New())
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *CardRepositorySuite) TestUpdate() {
	ctx := context.Background()
	card := s.newCard(nil)
	s.Require().NoError(s.repo.Insert(ctx, card))

	card.EaseFactor = 2.6
	card.RepetitionNumber = 1
	card.IntervalDays = 1
	card.TotalReviews = 1
	card.State = models.StateLearning
	s.Require().NoError(s.repo.Update(ctx, card))

	got, err := s.repo.Get(ctx, card.ID)
	s.Require().NoError(err)
	s.Equal(2.6, got.EaseFactor)
	s.Equal(1, got.RepetitionNumber)
	s.Equal(models.StateLearning, got.State)
	s.Equal(int64(2), got.Version, "successful update bumps the version")
}

func (s *CardRepositorySuite) TestUpdateStaleVersionConflicts() {
	ctx := context.Background()
	card := s.newCard(nil)
	s.Require().NoError(s.repo.Insert(ctx, card))

	// First writer wins and bumps the version to 2.
	winner := card
	winner.TotalReviews = 1
	s.Require().NoError(s.repo.Update(ctx, winner))

	// Second writer still holds version 1 and must be rejected.
	loser := card
	loser.TotalReviews = 99
	s.ErrorIs(s.repo.Update(ctx, loser), repository.ErrConflict)

	got, err := s.repo.Get(ctx, card.ID)
	s.Require().NoError(err)
	s.Equal(1, got.TotalReviews, "stale write must not be applied")
}

func (s *CardRepositorySuite) TestUpdateMissingCard() {
	card := s.newCard(nil)
	s.ErrorIs(s.repo.Update(context.Background(), card), repository.ErrNotFound)
}

func (s *CardRepositorySuite) TestListByLearner() {
	ctx := context.Background()
	first := s.newCard(nil)
	second := s.newCard(nil)
	s.Require().NoError(s.repo.Insert(ctx, first))
	s.Require().NoError(s.repo.Insert(ctx, second))

	other := testutil.SeedLearner(s.T(), s.db, "bob")
	otherWord := testutil.SeedWord(s.T(), s.db, other, "hola")
	s.Require().NoError(s.repo.Insert(ctx, models.Card{
		ID:           uuid.New(),
		LearnerID:    other,
		WordID:       otherWord,
		EaseFactor:   2.5,
		NextReviewAt: time.Now().UTC(),
		State:        models.StateNew,
		CreatedAt:    time.Now().UTC(),
	}))

	cards, err := s.repo.ListByLearner(ctx, s.learnerID)
	s.Require().NoError(err)
	s.Len(cards, 2)
	for _, c := range cards {
		s.Equal(s.learnerID, c.LearnerID)
	}
}

func (s *CardRepositorySuite) TestListFilters() {
	ctx := context.Background()
	due := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	overdue := s.newCard(func(c *models.Card) {
		c.NextReviewAt = due.AddDate(0, 0, -2)
		c.TotalReviews = 3
		c.State = models.StateReview
		c.Lapses = 2
	})
	upcoming := s.newCard(func(c *models.Card) {
		c.NextReviewAt = due.AddDate(0, 0, 5)
		c.TotalReviews = 3
		c.State = models.StateMature
	})
	fresh := s.newCard(func(c *models.Card) {
		c.NextReviewAt = due
	})
	for _, c := range []models.Card{overdue, upcoming, fresh} {
		s.Require().NoError(s.repo.Insert(ctx, c))
	}

	s.Run("by state", func() {
		cards, err := s.repo.List(ctx, models.CardFilter{
			LearnerID: s.learnerID,
			States:    []models.CardState{models.StateReview, models.StateMature},
		})
		s.Require().NoError(err)
		s.Len(cards, 2)
	})

	s.Run("due before", func() {
		cards, err := s.repo.List(ctx, models.CardFilter{
			LearnerID: s.learnerID,
			DueBefore: &due,
		})
		s.Require().NoError(err)
		s.Len(cards, 2)
	})

	s.Run("min lapses", func() {
		cards, err := s.repo.List(ctx, models.CardFilter{
			LearnerID: s.learnerID,
			MinLapses: 1,
		})
		s.Require().NoError(err)
		s.Require().Len(cards, 1)
		s.Equal(overdue.ID, cards[0].ID)
	})

	s.Run("limit", func() {
		cards, err := s.repo.List(ctx, models.CardFilter{
			LearnerID: s.learnerID,
			Limit:     2,
		})
		s.Require().NoError(err)
		s.Len(cards, 2)
	})
}

func (s *CardRepositorySuite) TestReviewLog() {
	ctx := context.Background()
	card := s.newCard(nil)
	s.Require().NoError(s.repo.Insert(ctx, card))

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i, q := range []int{4, 2, 3} {
		s.Require().NoError(s.repo.InsertReviewLog(ctx, models.ReviewResponse{
			CardID:      card.ID,
			LearnerID:   s.learnerID,
			Quality:     q,
			TimeSeconds: float64(i + 1),
			ReviewedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}

	entries, err := s.repo.ReviewLogSince(ctx, s.learnerID, base)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(4, entries[0].Quality)
	s.Equal(card.ID, entries[0].CardID)
	s.True(entries[0].ReviewedAt.Equal(base))

	// The since bound is inclusive on its own timestamp but filters older rows.
	entries, err = s.repo.ReviewLogSince(ctx, s.learnerID, base.Add(30*time.Minute))
	s.Require().NoError(err)
	s.Len(entries, 2)
}
