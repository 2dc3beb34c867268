// Package record folds raw interaction collections into per-account counts.
//
// A Tracker is built per computation from the subject's handle and the
// subject's follower ids (the eligibility set). It is not safe for
// concurrent use; each computation owns its own Tracker.
package record

import (
	"strings"

	"github.com/okian/orbit/internal/domain/model"
)

// Interaction kinds, also used as metric labels.
const (
	KindMention = "mention"
	KindReply   = "reply"
	KindRetweet = "retweet"
	KindLike    = "like"
)

// Record holds per-account interaction counts. Counts only ever
// increase while the Tracker is being fed.
type Record struct {
	ID         string
	ScreenName string
	Mentions   int
	Replies    int
	Retweets   int
	Likes      int
}

// Totals aggregates counts across all records, by kind.
type Totals struct {
	Mentions int `json:"mentions"`
	Replies  int `json:"replies"`
	Retweets int `json:"retweets"`
	Likes    int `json:"likes"`
}

// Tracker accumulates interaction counts for one subject.
type Tracker struct {
	subject  string
	eligible map[string]struct{}
	records  map[string]*Record
}

// NewTracker creates a Tracker for the given subject screen name and
// eligibility set. Interactions from accounts outside followerIDs are
// discarded; so are the subject's own interactions.
func NewTracker(subjectScreenName string, followerIDs []string) *Tracker {
	eligible := make(map[string]struct{}, len(followerIDs))
	for _, id := range followerIDs {
		eligible[id] = struct{}{}
	}
	return &Tracker{
		subject:  subjectScreenName,
		eligible: eligible,
		records:  make(map[string]*Record),
	}
}

// RecordMentions counts every mention's author.
func (t *Tracker) RecordMentions(posts []model.Post) {
	for _, p := range posts {
		t.add(p.Author, KindMention)
	}
}

// RecordTimeline counts reply targets and retweeted authors from the
// subject's own timeline. A post with neither association contributes
// nothing.
func (t *Tracker) RecordTimeline(posts []model.Post) {
	for _, p := range posts {
		if p.InReplyTo != nil {
			t.add(*p.InReplyTo, KindReply)
		}
		if p.RetweetOf != nil {
			t.add(*p.RetweetOf, KindRetweet)
		}
	}
}

// RecordLikes counts every liked post's author.
func (t *Tracker) RecordLikes(posts []model.Post) {
	for _, p := range posts {
		t.add(p.Author, KindLike)
	}
}

// add applies the uniform exclusion rules and increments the matching
// counter, creating the record lazily on first interaction.
func (t *Tracker) add(candidate model.Author, kind string) {
	if candidate.Zero() {
		return
	}
	// Self-interactions never count, regardless of kind.
	if strings.EqualFold(candidate.ScreenName, t.subject) {
		return
	}
	// Only followers can raise a score.
	if _, ok := t.eligible[candidate.ID]; !ok {
		return
	}

	rec, ok := t.records[candidate.ID]
	if !ok {
		rec = &Record{ID: candidate.ID, ScreenName: candidate.ScreenName}
		t.records[candidate.ID] = rec
	}

	switch kind {
	case KindMention:
		rec.Mentions++
	case KindReply:
		rec.Replies++
	case KindRetweet:
		rec.Retweets++
	case KindLike:
		rec.Likes++
	}
}

// Records returns a snapshot of all accumulated records. Order is
// unspecified; the ranker imposes the final order.
func (t *Tracker) Records() []Record {
	out := make([]Record, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, *rec)
	}
	return out
}

// Totals sums the per-kind counts across all records.
func (t *Tracker) Totals() Totals {
	var sum Totals
	for _, rec := range t.records {
		sum.Mentions += rec.Mentions
		sum.Replies += rec.Replies
		sum.Retweets += rec.Retweets
		sum.Likes += rec.Likes
	}
	return sum
}

// Len returns the number of distinct accounts recorded so far.
func (t *Tracker) Len() int {
	return len(t.records)
}
