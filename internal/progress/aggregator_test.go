package progress

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/wordflash/internal/models"
)

var reportNow = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)

func response(quality int, reviewedAt time.Time) models.ReviewResponse {
	return models.ReviewResponse{
		CardID:     uuid.New(),
		LearnerID:  1,
		Quality:    quality,
		ReviewedAt: reviewedAt,
	}
}

func TestBuildReportCounts(t *testing.T) {
	cards := []models.Card{
		{State: models.StateNew, EaseFactor: 2.5, NextReviewAt: reportNow},
		{State: models.StateLearning, EaseFactor: 2.5, TotalReviews: 2, NextReviewAt: reportNow.AddDate(0, 0, 1)},
		{State: models.StateReview, EaseFactor: 2.6, TotalReviews: 4, NextReviewAt: reportNow.AddDate(0, 0, -1)},
		{State: models.StateMature, EaseFactor: 2.8, TotalReviews: 10, NextReviewAt: reportNow.AddDate(0, 0, 30)},
		{State: models.StateLapsed, EaseFactor: 2.2, TotalReviews: 6, NextReviewAt: reportNow.AddDate(0, 0, -2)},
	}
	log := []models.ReviewResponse{
		response(4, reportNow.Add(-time.Hour)),
		response(3, reportNow.Add(-2*time.Hour)),
		response(1, reportNow.Add(-3*time.Hour)),
		response(0, reportNow.Add(-4*time.Hour)),
	}

	report := BuildReport(1, cards, log, reportNow)

	assert.Equal(t, int64(1), report.LearnerID)
	assert.Equal(t, 5, report.TotalCards)
	assert.Equal(t, 1, report.NewCards)
	assert.Equal(t, 1, report.LearningCards)
	assert.Equal(t, 1, report.ReviewCards)
	assert.Equal(t, 1, report.MatureCards)
	assert.Equal(t, 1, report.LapsedCards)
	// New card plus the two overdue ones.
	assert.Equal(t, 3, report.CardsDue)
	assert.Equal(t, 22, report.TotalReviews)
	assert.InDelta(t, 0.5, report.OverallAccuracy, 1e-9)
	assert.InDelta(t, 2.52, report.AvgEaseFactor, 1e-9)
	assert.True(t, report.GeneratedAt.Equal(reportNow))
}

func TestBuildReportEmpty(t *testing.T) {
	report := BuildReport(1, nil, nil, reportNow)

	assert.Equal(t, 0, report.TotalCards)
	assert.Equal(t, 0.0, report.OverallAccuracy)
	assert.Equal(t, 0.0, report.AvgEaseFactor)
	assert.Equal(t, 0, report.StreakDays)
	assert.Equal(t, models.TrendStable, report.AccuracyTrend)
}

func TestStreak(t *testing.T) {
	day := func(daysAgo int) time.Time {
		return reportNow.AddDate(0, 0, -daysAgo)
	}

	tests := []struct {
		name string
		log  []models.ReviewResponse
		want int
	}{
		{"no history", nil, 0},
		{"reviewed today only", []models.ReviewResponse{response(4, day(0))}, 1},
		{
			"three consecutive days ending today",
			[]models.ReviewResponse{response(4, day(0)), response(4, day(1)), response(4, day(2))},
			3,
		},
		{
			"streak survives when today has no review yet",
			[]models.ReviewResponse{response(4, day(1)), response(4, day(2))},
			2,
		},
		{
			"gap two days ago breaks the streak",
			[]models.ReviewResponse{response(4, day(0)), response(4, day(2))},
			1,
		},
		{"last activity too old", []models.ReviewResponse{response(4, day(3))}, 0},
		{
			"multiple reviews per day count once",
			[]models.ReviewResponse{response(4, day(0)), response(2, day(0)), response(4, day(1))},
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Streak(tt.log, reportNow))
		})
	}
}

func TestActivity(t *testing.T) {
	day := func(daysAgo int) time.Time {
		return reportNow.AddDate(0, 0, -daysAgo)
	}
	log := []models.ReviewResponse{
		response(4, day(0)),
		response(2, day(0)),
		response(3, day(2)),
		response(4, day(9)), // outside the window
	}

	got := Activity(log, reportNow, 7)

	require.Len(t, got, 2)
	assert.Equal(t, day(0).Format("2006-01-02"), got[0].Date)
	assert.Equal(t, 2, got[0].Reviews)
	assert.Equal(t, 1, got[0].Correct)
	assert.Equal(t, day(2).Format("2006-01-02"), got[1].Date)
	assert.Equal(t, 1, got[1].Reviews)
	assert.Equal(t, 1, got[1].Correct)
}

func TestBuildReportIncludesActivity(t *testing.T) {
	log := []models.ReviewResponse{response(4, reportNow.Add(-time.Hour))}

	report := BuildReport(1, nil, log, reportNow)

	require.Len(t, report.RecentActivity, 1)
	assert.Equal(t, 1, report.RecentActivity[0].Reviews)
}

func TestTrend(t *testing.T) {
	recent := func(quality, n int) []models.ReviewResponse {
		out := make([]models.ReviewResponse, n)
		for i := range out {
			out[i] = response(quality, reportNow.Add(-time.Duration(i+1)*time.Hour))
		}
		return out
	}
	previous := func(quality, n int) []models.ReviewResponse {
		out := make([]models.ReviewResponse, n)
		for i := range out {
			out[i] = response(quality, reportNow.AddDate(0, 0, -10).Add(-time.Duration(i)*time.Hour))
		}
		return out
	}

	t.Run("improving", func(t *testing.T) {
		log := append(recent(4, 10), previous(1, 10)...)
		assert.Equal(t, models.TrendImproving, Trend(log, reportNow))
	})

	t.Run("declining", func(t *testing.T) {
		log := append(recent(1, 10), previous(4, 10)...)
		assert.Equal(t, models.TrendDeclining, Trend(log, reportNow))
	})

	t.Run("stable when windows match", func(t *testing.T) {
		log := append(recent(4, 10), previous(4, 10)...)
		assert.Equal(t, models.TrendStable, Trend(log, reportNow))
	})

	t.Run("stable without enough history", func(t *testing.T) {
		assert.Equal(t, models.TrendStable, Trend(recent(4, 10), reportNow))
		assert.Equal(t, models.TrendStable, Trend(previous(1, 10), reportNow))
		assert.Equal(t, models.TrendStable, Trend(nil, reportNow))
	})

	t.Run("small delta stays stable", func(t *testing.T) {
		// 100% recent vs 96% previous: below the 5 point threshold.
		log := append(recent(4, 10), previous(4, 24)...)
		log = append(log, previous(1, 1)...)
		assert.Equal(t, models.TrendStable, Trend(log, reportNow))
	})
}
