package cache

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/cinematch/pkg/mood"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func TestMoodCache(t *testing.T) {
	Convey("Given a single slot mood cache", t, func() {
		clock := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
		c := NewMoodCache(1, WithClock(clock.Now))
		happy := mood.Recommend("happy", 5)

		Convey("It should miss when empty", func() {
			_, _, ok := c.Fresh("happy", DefaultTTL)
			So(ok, ShouldBeFalse)

			_, has := c.LastMood()
			So(has, ShouldBeFalse)
		})

		Convey("When recommendations are stored", func() {
			changed := c.Store("happy", happy, c.Now())
			So(changed, ShouldBeFalse)

			Convey("It should hit within the ttl", func() {
				clock.Advance(10 * time.Second)

				entry, age, ok := c.Fresh("happy", DefaultTTL)
				So(ok, ShouldBeTrue)
				So(age, ShouldEqual, 10*time.Second)
				So(entry.Recommendations, ShouldResemble, happy)
			})

			Convey("It should miss once the ttl has passed", func() {
				clock.Advance(DefaultTTL)

				_, _, ok := c.Fresh("happy", DefaultTTL)
				So(ok, ShouldBeFalse)
			})

			Convey("It should not match a differently cased mood", func() {
				_, _, ok := c.Fresh("Happy", DefaultTTL)
				So(ok, ShouldBeFalse)
			})

			Convey("Storing another mood should report a change and evict", func() {
				changed := c.Store("sad", mood.Recommend("sad", 5), c.Now())
				So(changed, ShouldBeTrue)
				So(c.Len(), ShouldEqual, 1)

				_, _, ok := c.Fresh("happy", DefaultTTL)
				So(ok, ShouldBeFalse)

				last, _ := c.LastMood()
				So(last, ShouldEqual, "sad")
			})

			Convey("Storing the same mood again should not report a change", func() {
				So(c.Store("happy", happy, c.Now()), ShouldBeFalse)
			})
		})

		Convey("An entry without recommendations should never hit", func() {
			c.Store("happy", nil, c.Now())

			_, _, ok := c.Fresh("happy", DefaultTTL)
			So(ok, ShouldBeFalse)
		})

		Convey("Purge should forget everything", func() {
			c.Store("happy", happy, c.Now())
			c.Purge()

			So(c.Len(), ShouldEqual, 0)
			_, has := c.LastMood()
			So(has, ShouldBeFalse)
		})
	})

	Convey("Given a larger cache", t, func() {
		c := NewMoodCache(3)

		Convey("It should keep several moods fresh at once", func() {
			c.Store("happy", mood.Recommend("happy", 5), c.Now())
			c.Store("sad", mood.Recommend("sad", 5), c.Now())

			_, _, okHappy := c.Fresh("happy", DefaultTTL)
			_, _, okSad := c.Fresh("sad", DefaultTTL)

			So(okHappy, ShouldBeTrue)
			So(okSad, ShouldBeTrue)
		})
	})
}
