package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/orbit/internal/adapters/cache"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache(t *testing.T) {
	Convey("Given an in-memory cache with a fake clock", t, func() {
		ctx := context.Background()
		now := time.Unix(1_700_000_000, 0)
		clock := func() time.Time { return now }
		c := cache.New(
			cache.WithTTL(time.Minute),
			cache.WithMaxEntries(2),
			cache.WithClock(clock),
		)

		Convey("When a value is stored", func() {
			c.Set(ctx, "alice|8,15,26", "orbit-a")

			Convey("Then it can be read back before expiry", func() {
				v, ok := c.Get(ctx, "alice|8,15,26")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "orbit-a")
				So(c.Len(), ShouldEqual, 1)
			})

			Convey("And it disappears after the TTL", func() {
				now = now.Add(2 * time.Minute)
				_, ok := c.Get(ctx, "alice|8,15,26")
				So(ok, ShouldBeFalse)
				So(c.Len(), ShouldEqual, 0)
			})
		})

		Convey("When a key is missing", func() {
			_, ok := c.Get(ctx, "nobody")

			Convey("Then the lookup misses", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When the cache is full", func() {
			c.Set(ctx, "a", 1)
			now = now.Add(time.Second)
			c.Set(ctx, "b", 2)
			now = now.Add(time.Second)
			c.Set(ctx, "c", 3)

			Convey("Then the oldest entry is evicted", func() {
				So(c.Len(), ShouldEqual, 2)
				_, ok := c.Get(ctx, "a")
				So(ok, ShouldBeFalse)
				v, ok := c.Get(ctx, "c")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 3)
			})
		})

		Convey("When an existing key is overwritten", func() {
			c.Set(ctx, "a", 1)
			c.Set(ctx, "a", 2)

			Convey("Then the new value wins without growing the cache", func() {
				v, ok := c.Get(ctx, "a")
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, 2)
				So(c.Len(), ShouldEqual, 1)
			})
		})
	})
}
