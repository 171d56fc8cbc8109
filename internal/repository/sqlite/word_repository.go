package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("inserting word: learner_id=%d, term=%s", w.LearnerID, w.Term)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (learner_id, term, translation) VALUES (?, ?, ?)
`, w.LearnerID, w.Term, w.Translation)
	if err != nil {
		log.Error("failed to insert word: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get word id: %v", err)
		return 0, err
	}
	log.Debug("word inserted: id=%d", id)
	return id, nil
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")

	var w models.Word
	err := r.db.QueryRowContext(ctx, `
SELECT id, learner_id, term, translation, created_at FROM words WHERE id = ?
`, id).Scan(&w.ID, &w.LearnerID, &w.Term, &w.Translation, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get word: %v", err)
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) ListByLearner(ctx context.Context, learnerID int64) ([]models.Word, error) {
	log := logger.FromContext(ctx).WithPrefix("word_repo")
	log.Debug("listing words: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, learner_id, term, translation, created_at
FROM words
WHERE learner_id = ?
ORDER BY term
`, learnerID)
	if err != nil {
		log.Error("failed to query words: %v", err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.LearnerID, &w.Term, &w.Translation, &w.CreatedAt); err != nil {
			log.Error("failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
