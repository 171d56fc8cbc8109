package progress

import (
	"time"

	"github.com/avelar/wordflash/internal/models"
)

// trendWindow is the size of each accuracy comparison window.
const trendWindow = 7 * 24 * time.Hour

// trendThreshold is the minimum accuracy change (in fraction, 5
// percentage points) before the trend leaves "stable".
const trendThreshold = 0.05

// activityDays is how many trailing days the report's activity breakdown covers.
const activityDays = 7

// BuildReport rolls per-card scheduling state and the review log into a
// learner-level report. It only reads scheduler and session outputs;
// nothing here feeds back into interval or ease math.
func BuildReport(learnerID int64, cards []models.Card, log []models.ReviewResponse, now time.Time) models.ProgressReport {
	report := models.ProgressReport{
		LearnerID:      learnerID,
		TotalCards:     len(cards),
		GeneratedAt:    now,
		AccuracyTrend:  Trend(log, now),
		StreakDays:     Streak(log, now),
		RecentActivity: Activity(log, now, activityDays),
	}

	var easeSum float64
	for _, c := range cards {
		switch c.State {
		case models.StateNew:
			report.NewCards++
		case models.StateLearning:
			report.LearningCards++
		case models.StateReview:
			report.ReviewCards++
		case models.StateMature:
			report.MatureCards++
		case models.StateLapsed:
			report.LapsedCards++
		}
		if c.DueBy(now) {
			report.CardsDue++
		}
		report.TotalReviews += c.TotalReviews
		easeSum += c.EaseFactor
	}
	if len(cards) > 0 {
		report.AvgEaseFactor = easeSum / float64(len(cards))
	}
	report.OverallAccuracy = accuracy(log)

	return report
}

// Streak counts consecutive calendar days with at least one review,
// walking backwards from today. A streak survives if the most recent
// activity was today or yesterday.
func Streak(log []models.ReviewResponse, now time.Time) int {
	days := make(map[string]bool, len(log))
	for _, r := range log {
		days[dayKey(r.ReviewedAt.In(now.Location()))] = true
	}
	if len(days) == 0 {
		return 0
	}

	day := now
	if !days[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
		if !days[dayKey(day)] {
			return 0
		}
	}

	streak := 0
	for days[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Trend compares accuracy over the last window against the preceding
// window of equal length.
func Trend(log []models.ReviewResponse, now time.Time) models.Trend {
	var recent, previous []models.ReviewResponse
	recentCutoff := now.Add(-trendWindow)
	previousCutoff := now.Add(-2 * trendWindow)

	for _, r := range log {
		switch {
		case r.ReviewedAt.After(recentCutoff):
			recent = append(recent, r)
		case r.ReviewedAt.After(previousCutoff):
			previous = append(previous, r)
		}
	}

	// Not enough history for a comparison.
	if len(recent) == 0 || len(previous) == 0 {
		return models.TrendStable
	}

	delta := accuracy(recent) - accuracy(previous)
	switch {
	case delta > trendThreshold:
		return models.TrendImproving
	case delta < -trendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// Activity buckets the review log into daily totals for the trailing
// days window, most recent day first. Days without reviews are omitted.
func Activity(log []models.ReviewResponse, now time.Time, days int) []models.DailyActivity {
	byDay := make(map[string]*models.DailyActivity)
	for _, r := range log {
		key := dayKey(r.ReviewedAt.In(now.Location()))
		a, ok := byDay[key]
		if !ok {
			a = &models.DailyActivity{Date: key}
			byDay[key] = a
		}
		a.Reviews++
		if r.Correct() {
			a.Correct++
		}
	}

	var out []models.DailyActivity
	for i := 0; i < days; i++ {
		if a, ok := byDay[dayKey(now.AddDate(0, 0, -i))]; ok {
			out = append(out, *a)
		}
	}
	return out
}

func accuracy(log []models.ReviewResponse) float64 {
	if len(log) == 0 {
		return 0
	}
	var correct int
	for _, r := range log {
		if r.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(log))
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
