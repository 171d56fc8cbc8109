package review

import (
	"context"
	"sync"
	"time"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/srs"
)

// Store is the persistence capability a session needs from its host.
// SaveCard must be atomic per card; SaveReviewLog is best-effort and a
// failure there never rolls back the card save.
type Store interface {
	SaveCard(ctx context.Context, card models.Card) error
	SaveReviewLog(ctx context.Context, resp models.ReviewResponse) error
}

// SessionState is the lifecycle stage of a review session.
type SessionState int

const (
	SessionNotStarted SessionState = iota
	SessionInProgress
	SessionCompleted
)

func (s SessionState) String() string {
	switch s {
	case SessionNotStarted:
		return "not_started"
	case SessionInProgress:
		return "in_progress"
	case SessionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session drives one bounded run through a queue of due cards, applying
// the scheduler to each response and collecting statistics. The queue is
// fixed at Start: cards that become due mid-session are not spliced in.
//
// A session is meant to live on a single interaction's call stack, but
// the internal mutex serializes calls if one does get shared.
type Session struct {
	mu sync.Mutex

	store  Store
	params srs.Params
	now    func() time.Time

	state     SessionState
	cards     []models.Card
	cursor    int
	revealed  bool
	responses []models.ReviewResponse
	startedAt time.Time
	summary   models.SessionSummary
}

// NewSession creates an unstarted session backed by the given store.
func NewSession(store Store, params srs.Params) *Session {
	return &Session{
		store:  store,
		params: params.Normalize(),
		now:    time.Now,
	}
}

// WithClock overrides the session clock; intended for tests.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.now = now
	return s
}

// Start fixes the queue and moves the session to InProgress.
func (s *Session) Start(cards []models.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionNotStarted {
		return ErrAlreadyStarted
	}
	if len(cards) == 0 {
		return ErrNoCards
	}

	s.cards = make([]models.Card, len(cards))
	copy(s.cards, cards)
	s.cursor = 0
	s.state = SessionInProgress
	s.startedAt = s.now()
	return nil
}

// RevealAnswer marks the current card's answer as shown. It only gates
// SubmitResponse and has no effect on scheduling. Idempotent.
func (s *Session) RevealAnswer() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionNotStarted:
		return ErrNotStarted
	case SessionCompleted:
		return ErrCompleted
	}
	s.revealed = true
	return nil
}

// SubmitResponse grades the current card, persists the scheduler's
// result, logs the response, and advances the cursor. The operation is
// atomic from the caller's view: if the card save fails the cursor does
// not move and the same response can be resubmitted.
func (s *Session) SubmitResponse(ctx context.Context, quality int, timeSeconds float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionNotStarted:
		return ErrNotStarted
	case SessionCompleted:
		return ErrCompleted
	}
	if !s.revealed {
		return ErrAnswerNotRevealed
	}

	now := s.now()
	card := s.cards[s.cursor]
	updated, err := srs.Advance(card, quality, now, s.params)
	if err != nil {
		return err
	}

	if err := s.store.SaveCard(ctx, updated); err != nil {
		return err
	}

	resp := models.ReviewResponse{
		CardID:      card.ID,
		LearnerID:   card.LearnerID,
		Quality:     quality,
		TimeSeconds: timeSeconds,
		ReviewedAt:  now,
	}
	if err := s.store.SaveReviewLog(ctx, resp); err != nil {
		logger.FromContext(ctx).Warn("failed to store review log entry: %v", err)
	}

	s.cards[s.cursor] = updated
	s.responses = append(s.responses, resp)
	s.revealed = false
	s.cursor++
	if s.cursor == len(s.cards) {
		s.complete(false)
	}
	return nil
}

// Abandon ends the session early, keeping the partial response log. The
// summary is flagged so downstream aggregation does not mistake partial
// data for a full pass.
func (s *Session) Abandon() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionNotStarted:
		return ErrNotStarted
	case SessionCompleted:
		return ErrCompleted
	}
	s.complete(true)
	return nil
}

func (s *Session) complete(abandoned bool) {
	var correct int
	var totalTime float64
	for _, r := range s.responses {
		if r.Correct() {
			correct++
		}
		totalTime += r.TimeSeconds
	}
	avg := 0.0
	if len(s.responses) > 0 {
		avg = totalTime / float64(len(s.responses))
	}

	s.summary = models.SessionSummary{
		CardsReviewed:        len(s.responses),
		CorrectCount:         correct,
		AverageResponseTime:  avg,
		TotalDurationMinutes: s.now().Sub(s.startedAt).Minutes(),
		WasAbandoned:         abandoned,
	}
	s.state = SessionCompleted
}

// State returns the current lifecycle stage.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentCard returns the card the session is waiting on.
func (s *Session) CurrentCard() (models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SessionNotStarted:
		return models.Card{}, ErrNotStarted
	case SessionCompleted:
		return models.Card{}, ErrCompleted
	}
	return s.cards[s.cursor], nil
}

// Remaining returns how many cards are left, including the current one.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionInProgress {
		return 0
	}
	return len(s.cards) - s.cursor
}

// Responses returns a copy of the in-memory response log.
func (s *Session) Responses() []models.ReviewResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ReviewResponse, len(s.responses))
	copy(out, s.responses)
	return out
}

// Summary returns the final aggregates of a completed session.
func (s *Session) Summary() (models.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionCompleted {
		return models.SessionSummary{}, ErrNotStarted
	}
	return s.summary, nil
}
