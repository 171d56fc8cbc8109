package review

import (
	"sort"
	"time"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/srs"
)

// DueCards selects and orders the cards due for review at the given
// instant, bounded by limit. It is a pure function over the snapshot the
// caller loaded: no mutation, no I/O.
//
// Ordering: overdue cards first, most overdue leading, struggling cards
// (more lapses) breaking ties, card ID as the final deterministic
// tie-break. New cards go after every overdue card so a backlog is
// cleared before new material is introduced, and at most
// NewCardsPerSession of them are admitted.
func DueCards(cards []models.Card, now time.Time, limit int, params srs.Params) []models.Card {
	params = params.Normalize()
	if limit <= 0 {
		return nil
	}

	var due, fresh []models.Card
	for _, c := range cards {
		switch {
		case c.IsNew():
			fresh = append(fresh, c)
		case c.DueBy(now):
			due = append(due, c)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		if due[i].Lapses != due[j].Lapses {
			return due[i].Lapses > due[j].Lapses
		}
		return due[i].ID.String() < due[j].ID.String()
	})
	sort.Slice(fresh, func(i, j int) bool {
		if fresh[i].Lapses != fresh[j].Lapses {
			return fresh[i].Lapses > fresh[j].Lapses
		}
		return fresh[i].ID.String() < fresh[j].ID.String()
	})

	if len(fresh) > params.NewCardsPerSession {
		fresh = fresh[:params.NewCardsPerSession]
	}

	out := make([]models.Card, 0, len(due)+len(fresh))
	out = append(out, due...)
	out = append(out, fresh...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
