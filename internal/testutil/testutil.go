package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avelar/wordflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied, reusing the production open path so tests run against the
// real schema.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open(":memory:")
	require.NoError(t, err)
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}

// SeedLearner inserts a learner row and returns its id.
func SeedLearner(t *testing.T, database *db.DB, username string) int64 {
	t.Helper()
	ctx := context.Background()

	res, err := database.ExecContext(ctx, `INSERT INTO learners (username) VALUES (?)`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// SeedWord inserts a word row for the learner and returns its id.
func SeedWord(t *testing.T, database *db.DB, learnerID int64, term string) int64 {
	t.Helper()
	ctx := context.Background()

	res, err := database.ExecContext(ctx, `INSERT INTO words (learner_id, term, translation) VALUES (?, ?, ?)`,
		learnerID, term, term+" (translated)")
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}
