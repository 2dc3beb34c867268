// Package scoring converts finalized interaction records into weighted
// closeness tallies.
package scoring

import (
	"github.com/okian/orbit/internal/domain/record"
)

// Interaction weights. Mentions are the strongest signal of direct
// engagement, then retweets, then replies; likes are the most casual.
// These are constants of the closeness model, not configuration.
const (
	LikeWeight    = 0.5
	ReplyWeight   = 1.0
	RetweetWeight = 1.5
	MentionWeight = 2.0
)

// Tally is a read-only scoring result for one account. Total is
// computed once from a finalized record; only Avatar is attached later.
type Tally struct {
	ID         string  `json:"id"`
	ScreenName string  `json:"screen_name"`
	Total      float64 `json:"total"`
	Avatar     string  `json:"avatar,omitempty"`
}

// Score maps a finalized record to its weighted tally.
func Score(rec record.Record) Tally {
	total := float64(rec.Likes)*LikeWeight +
		float64(rec.Replies)*ReplyWeight +
		float64(rec.Retweets)*RetweetWeight +
		float64(rec.Mentions)*MentionWeight
	return Tally{
		ID:         rec.ID,
		ScreenName: rec.ScreenName,
		Total:      total,
	}
}

// ScoreAll maps every record to its tally. Output order follows input
// order; ranking happens downstream.
func ScoreAll(recs []record.Record) []Tally {
	out := make([]Tally, len(recs))
	for i, rec := range recs {
		out[i] = Score(rec)
	}
	return out
}
