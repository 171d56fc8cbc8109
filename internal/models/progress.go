package models

import "time"

// Trend classifies how a learner's recent accuracy is moving.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// DailyActivity is one calendar day's worth of reviewing.
type DailyActivity struct {
	Date    string `json:"date"`
	Reviews int    `json:"reviews"`
	Correct int    `json:"correct"`
}

// ProgressReport is the user-level rollup derived from cards and the
// review log. It is reporting output only and never feeds back into
// scheduling decisions.
type ProgressReport struct {
	LearnerID       int64     `json:"learner_id"`
	TotalCards      int       `json:"total_cards"`
	NewCards        int       `json:"new_cards"`
	LearningCards   int       `json:"learning_cards"`
	ReviewCards     int       `json:"review_cards"`
	MatureCards     int       `json:"mature_cards"`
	LapsedCards     int       `json:"lapsed_cards"`
	CardsDue        int       `json:"cards_due"`
	TotalReviews    int       `json:"total_reviews"`
	OverallAccuracy float64   `json:"overall_accuracy"`
	StreakDays      int       `json:"streak_days"`
	AccuracyTrend   Trend     `json:"accuracy_trend"`
	AvgEaseFactor   float64   `json:"avg_ease_factor"`

	// RecentActivity covers the trailing week, most recent day first.
	RecentActivity []DailyActivity `json:"recent_activity,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// SessionSummary aggregates one completed (or abandoned) review session.
type SessionSummary struct {
	CardsReviewed        int     `json:"cards_reviewed"`
	CorrectCount         int     `json:"correct_count"`
	AverageResponseTime  float64 `json:"average_response_time_seconds"`
	TotalDurationMinutes float64 `json:"total_duration_minutes"`
	WasAbandoned         bool    `json:"was_abandoned"`
}
