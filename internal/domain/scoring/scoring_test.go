package scoring_test

import (
	"testing"

	"github.com/okian/orbit/internal/domain/record"
	"github.com/okian/orbit/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given finalized interaction records", t, func() {
		Convey("When a record holds two likes and one reply", func() {
			tally := scoring.Score(record.Record{ID: "u1", ScreenName: "bob", Likes: 2, Replies: 1})

			Convey("Then total is 2*0.5 + 1*1.0", func() {
				So(tally.Total, ShouldEqual, 2.0)
				So(tally.ID, ShouldEqual, "u1")
				So(tally.ScreenName, ShouldEqual, "bob")
				So(tally.Avatar, ShouldBeBlank)
			})
		})

		Convey("When all four kinds contribute", func() {
			tally := scoring.Score(record.Record{
				ID:       "u2",
				Mentions: 1,
				Retweets: 1,
				Replies:  1,
				Likes:    1,
			})

			Convey("Then total is the sum of all weighted counts", func() {
				So(tally.Total, ShouldEqual, 2.0+1.5+1.0+0.5)
			})
		})

		Convey("When a record has no interactions", func() {
			tally := scoring.Score(record.Record{ID: "u3"})

			Convey("Then total is zero", func() {
				So(tally.Total, ShouldEqual, 0.0)
			})
		})

		Convey("When scoring the same record twice", func() {
			rec := record.Record{ID: "u4", Mentions: 3, Likes: 5}

			Convey("Then both tallies are identical", func() {
				So(scoring.Score(rec), ShouldResemble, scoring.Score(rec))
			})
		})
	})
}

func TestScoreAll(t *testing.T) {
	Convey("Given a slice of records", t, func() {
		recs := []record.Record{
			{ID: "u1", Mentions: 1, Retweets: 1},
			{ID: "u2", Replies: 1, Likes: 1},
		}

		Convey("When all are scored", func() {
			tallies := scoring.ScoreAll(recs)

			Convey("Then output preserves input order and totals", func() {
				So(tallies, ShouldHaveLength, 2)
				So(tallies[0].ID, ShouldEqual, "u1")
				So(tallies[0].Total, ShouldEqual, 3.5)
				So(tallies[1].ID, ShouldEqual, "u2")
				So(tallies[1].Total, ShouldEqual, 1.5)
			})
		})
	})
}
