package models

import "time"

// Word is a learning item. The scheduler only ever holds a reference to
// it; content (translations, examples) belongs to the content subsystem.
type Word struct {
	ID          int64     `json:"id"`
	LearnerID   int64     `json:"learner_id"`
	Term        string    `json:"term"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

// Learner is the owner of a card collection.
type Learner struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
