package app_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/orbit/internal/adapters/cache"
	"github.com/okian/orbit/internal/adapters/xapi"
	"github.com/okian/orbit/internal/app"
	. "github.com/smartystreets/goconvey/convey"
)

// newUpstream serves a full canned X API surface for subject "alice":
// followers u1 and u2, a mention by u1 and one by the non-follower u7,
// a self-mention, a reply to u2, a retweet of u1, and a like of a post
// by u2.
func newUpstream() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/by/username/alice", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"id":"u0","username":"alice"}}`)
	})
	mux.HandleFunc("/users/u0/followers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"u1","username":"bob"},{"id":"u2","username":"carol"}]}`)
	})
	mux.HandleFunc("/users/u0/following", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"u2","username":"carol"},{"id":"u9","username":"eve"}]}`)
	})
	mux.HandleFunc("/users/u0/mentions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data":[
				{"id":"m1","author_id":"u1"},
				{"id":"m2","author_id":"u7"},
				{"id":"m3","author_id":"u0"}
			],
			"includes":{"users":[
				{"id":"u1","username":"bob"},
				{"id":"u7","username":"mallory"},
				{"id":"u0","username":"Alice"}
			]}
		}`)
	})
	mux.HandleFunc("/users/u0/tweets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data":[
				{"id":"t1","in_reply_to_user_id":"u2"},
				{"id":"t2","referenced_tweets":[{"type":"retweeted","id":"orig1"}]}
			],
			"includes":{
				"users":[{"id":"u1","username":"bob"},{"id":"u2","username":"carol"}],
				"tweets":[{"id":"orig1","author_id":"u1"}]
			}
		}`)
	})
	mux.HandleFunc("/users/u0/liked_tweets", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"data":[{"id":"l1","author_id":"u2"}],
			"includes":{"users":[{"id":"u2","username":"carol"}]}
		}`)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"u1","username":"bob","profile_image_url":"https://img.test/u1.png"}]}`)
	})
	return httptest.NewServer(mux)
}

func TestService_Orbit_Integration(t *testing.T) {
	Convey("Given the pipeline wired to a canned upstream", t, func() {
		srv := newUpstream()
		defer srv.Close()

		fetcher := xapi.NewClient(srv.URL, "test-token", xapi.WithRateLimit(1000, 1000))
		svc := app.New(
			app.WithFetcher(fetcher),
			app.WithCache(cache.New()),
		)

		Convey("When the orbit for alice is computed with layers [1,1]", func() {
			orbit, err := svc.Orbit(context.Background(), "alice", []int{1, 1})

			Convey("Then the full pipeline produces the expected tiers", func() {
				So(err, ShouldBeNil)
				So(orbit.ScreenName, ShouldEqual, "alice")
				So(orbit.Layers, ShouldHaveLength, 2)

				So(orbit.Layers[0][0].ID, ShouldEqual, "u1")
				So(orbit.Layers[0][0].ScreenName, ShouldEqual, "bob")
				So(orbit.Layers[0][0].Total, ShouldEqual, 3.5)
				So(orbit.Layers[0][0].Avatar, ShouldEqual, "https://img.test/u1.png")

				So(orbit.Layers[1][0].ID, ShouldEqual, "u2")
				So(orbit.Layers[1][0].Total, ShouldEqual, 1.5)
				So(orbit.Layers[1][0].Avatar, ShouldBeBlank)
			})

			Convey("And the non-follower and the subject never rank", func() {
				So(err, ShouldBeNil)
				for _, layer := range orbit.Layers {
					for _, entry := range layer {
						So(entry.ID, ShouldNotEqual, "u7")
						So(entry.ID, ShouldNotEqual, "u0")
					}
				}
			})

			Convey("And friends are surfaced without feeding the score", func() {
				So(err, ShouldBeNil)
				So(orbit.Friends, ShouldResemble, []string{"u2", "u9"})
			})
		})
	})
}
