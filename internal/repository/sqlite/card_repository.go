package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type cardRepository struct {
	db *sql.DB
}

// NewCardRepository creates a new CardRepository implementation
func NewCardRepository(db *sql.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

const cardColumns = `id, learner_id, word_id, ease_factor, repetition_number, interval_days,
next_review_at, last_reviewed_at, consecutive_correct, total_reviews, lapses, state, version, created_at`

func (r *cardRepository) Insert(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting card: id=%s, learner_id=%d, word_id=%d", c.ID, c.LearnerID, c.WordID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO cards (id, learner_id, word_id, ease_factor, repetition_number, interval_days,
    next_review_at, last_reviewed_at, consecutive_correct, total_reviews, lapses, state, version, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID.String(), c.LearnerID, c.WordID, c.EaseFactor, c.RepetitionNumber, c.IntervalDays,
		c.NextReviewAt, nullableTime(c.LastReviewedAt), c.ConsecutiveCorrect, c.TotalReviews,
		c.Lapses, c.State.String(), 1, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

// Update persists the card only if its version stamp still matches the
// stored row, then bumps the version. A concurrent writer winning the
// race turns into ErrConflict instead of a silent lost update.
func (r *cardRepository) Update(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("updating card: id=%s, interval=%d, ease=%.2f, version=%d", c.ID, c.IntervalDays, c.EaseFactor, c.Version)

	res, err := r.db.ExecContext(ctx, `
UPDATE cards
SET ease_factor = ?, repetition_number = ?, interval_days = ?, next_review_at = ?,
    last_reviewed_at = ?, consecutive_correct = ?, total_reviews = ?, lapses = ?,
    state = ?, version = version + 1
WHERE id = ? AND version = ?
`, c.EaseFactor, c.RepetitionNumber, c.IntervalDays, c.NextReviewAt,
		nullableTime(c.LastReviewedAt), c.ConsecutiveCorrect, c.TotalReviews, c.Lapses,
		c.State.String(), c.ID.String(), c.Version)
	if err != nil {
		log.Error("failed to update card: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the card is gone or another writer bumped the version.
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM cards WHERE id = ?`, c.ID.String()).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		log.Warn("stale card update rejected: id=%s, version=%d", c.ID, c.Version)
		return repository.ErrConflict
	}
	return nil
}

func (r *cardRepository) Get(ctx context.Context, id uuid.UUID) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching card: id=%s", id)

	row := r.db.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = ?`, id.String())
	card, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return card, nil
}

func (r *cardRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("listing cards: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+cardColumns+`
FROM cards
WHERE learner_id = ?
ORDER BY id
`, learnerID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards, err := collectCards(rows)
	if err != nil {
		log.Error("failed to scan card rows: %v", err)
		return nil, err
	}
	log.Debug("found %d cards", len(cards))
	return cards, nil
}

// List applies a dynamic filter. Built with squirrel so the WHERE clause
// only contains the criteria the caller actually set.
func (r *cardRepository) List(ctx context.Context, filter models.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")

	builder := sq.Select(cardColumns).From("cards").OrderBy("next_review_at", "id")
	if filter.LearnerID != 0 {
		builder = builder.Where(sq.Eq{"learner_id": filter.LearnerID})
	}
	if len(filter.States) > 0 {
		names := make([]string, len(filter.States))
		for i, s := range filter.States {
			names[i] = s.String()
		}
		builder = builder.Where(sq.Eq{"state": names})
	}
	if filter.DueBefore != nil {
		builder = builder.Where(sq.LtOrEq{"next_review_at": *filter.DueBefore})
	}
	if filter.MinLapses > 0 {
		builder = builder.Where(sq.GtOrEq{"lapses": filter.MinLapses})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	log.Debug("listing cards with filter: %s", query)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	cards, err := collectCards(rows)
	if err != nil {
		log.Error("failed to scan card rows: %v", err)
		return nil, err
	}
	return cards, nil
}

func (r *cardRepository) InsertReviewLog(ctx context.Context, resp models.ReviewResponse) error {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("inserting review log: card_id=%s, quality=%d, time=%.2fs", resp.CardID, resp.Quality, resp.TimeSeconds)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_log (card_id, learner_id, quality, time_seconds, reviewed_at)
VALUES (?, ?, ?, ?, ?)
`, resp.CardID.String(), resp.LearnerID, resp.Quality, resp.TimeSeconds, resp.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review log: %v", err)
	}
	return err
}

func (r *cardRepository) ReviewLogSince(ctx context.Context, learnerID int64, since time.Time) ([]models.ReviewResponse, error) {
	log := logger.FromContext(ctx).WithPrefix("card_repo")
	log.Debug("fetching review log: learner_id=%d, since=%s", learnerID, since)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, learner_id, quality, time_seconds, reviewed_at
FROM review_log
WHERE learner_id = ? AND reviewed_at >= ?
ORDER BY reviewed_at
`, learnerID, since)
	if err != nil {
		log.Error("failed to query review log: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.ReviewResponse
	for rows.Next() {
		var e models.ReviewResponse
		var cardID string
		if err := rows.Scan(&e.ID, &cardID, &e.LearnerID, &e.Quality, &e.TimeSeconds, &e.ReviewedAt); err != nil {
			log.Error("failed to scan review log row: %v", err)
			return nil, err
		}
		id, err := uuid.Parse(cardID)
		if err != nil {
			return nil, err
		}
		e.CardID = id
		entries = append(entries, e)
	}
	log.Debug("found %d review log entries", len(entries))
	return entries, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.Card, error) {
	var c models.Card
	var id, state string
	var lastReviewed sql.NullTime

	err := row.Scan(&id, &c.LearnerID, &c.WordID, &c.EaseFactor, &c.RepetitionNumber,
		&c.IntervalDays, &c.NextReviewAt, &lastReviewed, &c.ConsecutiveCorrect,
		&c.TotalReviews, &c.Lapses, &state, &c.Version, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	c.State, err = models.ParseCardState(state)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		c.LastReviewedAt = &t
	}
	return &c, nil
}

func collectCards(rows *sql.Rows) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
