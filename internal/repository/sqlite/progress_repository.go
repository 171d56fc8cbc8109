package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// Snapshots are stored as JSON: the report is derived data and its shape
// changes more often than it is worth migrating columns for.
func (r *progressRepository) SaveSnapshot(ctx context.Context, report models.ProgressReport) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("saving progress snapshot: learner_id=%d", report.LearnerID)

	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO progress_snapshots (learner_id, report, generated_at)
VALUES (?, ?, ?)
ON CONFLICT(learner_id) DO UPDATE SET report = excluded.report, generated_at = excluded.generated_at
`, report.LearnerID, string(payload), report.GeneratedAt)
	if err != nil {
		log.Error("failed to save progress snapshot: %v", err)
	}
	return err
}

func (r *progressRepository) GetSnapshot(ctx context.Context, learnerID int64) (*models.ProgressReport, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	var payload string
	err := r.db.QueryRowContext(ctx, `
SELECT report FROM progress_snapshots WHERE learner_id = ?
`, learnerID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get progress snapshot: %v", err)
		return nil, err
	}

	var report models.ProgressReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		log.Error("failed to decode progress snapshot: %v", err)
		return nil, err
	}
	return &report, nil
}
