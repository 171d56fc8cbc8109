package worker

import (
	"context"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/services"
)

// ProgressRefreshJob recomputes a learner's progress snapshot in the
// background after their cards changed. Reporting stays off the review
// request path.
type ProgressRefreshJob struct {
	ProgressService services.ProgressService
	LearnerID       int64
}

func (j *ProgressRefreshJob) Name() string { return "progress_refresh" }

func (j *ProgressRefreshJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("learner_id", j.LearnerID)
	log.Debug("recomputing progress snapshot")

	report, err := j.ProgressService.RefreshReport(ctx, j.LearnerID)
	if err != nil {
		return err
	}

	log.Debug("progress snapshot updated: mature=%d, due=%d, streak=%d days",
		report.MatureCards, report.CardsDue, report.StreakDays)
	return nil
}
