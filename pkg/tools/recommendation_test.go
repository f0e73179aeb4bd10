package tools

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/cinematch/pkg/cache"
	"github.com/theapemachine/cinematch/pkg/mood"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func TestRecommendationTool(t *testing.T) {
	Convey("Given a recommendation tool with a fresh cache", t, func() {
		clock := &testClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
		tool := NewRecommendationTool(cache.NewMoodCache(1, cache.WithClock(clock.Now)))

		Convey("When asked for happy, happy, then sad", func() {
			first := tool.Recommend("happy", 5, cache.DefaultTTL)

			clock.t = clock.t.Add(10 * time.Second)
			second := tool.Recommend("happy", 5, cache.DefaultTTL)

			clock.t = clock.t.Add(time.Second)
			third := tool.Recommend("sad", 5, cache.DefaultTTL)

			Convey("The first call should miss without a mood change", func() {
				So(first.Cached, ShouldBeFalse)
				So(first.Recommendations, ShouldHaveLength, 5)
				So(first.Recommendations[0].Title, ShouldEqual, "The Grand Budapest Hotel")
				So(*first.MoodChanged, ShouldBeFalse)
				So(first.CacheAge, ShouldBeNil)
				So(first.Timestamp, ShouldEqual, "2025-03-01T09:00:00.000Z")
			})

			Convey("The second call should hit with its age", func() {
				So(second.Cached, ShouldBeTrue)
				So(*second.CacheAge, ShouldEqual, 10)
				So(second.MoodChanged, ShouldBeNil)
				So(second.Recommendations, ShouldResemble, first.Recommendations)
				So(second.Timestamp, ShouldEqual, first.Timestamp)
			})

			Convey("The third call should miss and report the mood change", func() {
				So(third.Cached, ShouldBeFalse)
				So(*third.MoodChanged, ShouldBeTrue)
				So(third.Recommendations[0].Title, ShouldEqual, "Life is Beautiful")
			})

			Convey("Going back to happy should miss again", func() {
				again := tool.Recommend("happy", 5, cache.DefaultTTL)
				So(again.Cached, ShouldBeFalse)
				So(*again.MoodChanged, ShouldBeTrue)
			})
		})

		Convey("When the cached entry has expired", func() {
			tool.Recommend("excited", 5, time.Minute)
			clock.t = clock.t.Add(time.Minute)

			out := tool.Recommend("excited", 5, time.Minute)

			Convey("It should regenerate", func() {
				So(out.Cached, ShouldBeFalse)
				So(*out.MoodChanged, ShouldBeFalse)
			})
		})

		Convey("When a hit asks for fewer items", func() {
			tool.Recommend("scared", 5, cache.DefaultTTL)
			out := tool.Recommend("scared", 2, cache.DefaultTTL)

			Convey("It should truncate the cached list", func() {
				So(out.Cached, ShouldBeTrue)
				So(out.Recommendations, ShouldHaveLength, 2)
			})
		})

		Convey("When the mood is unknown", func() {
			out := tool.Recommend("Bored", 3, cache.DefaultTTL)

			Convey("It should fall back to relaxed but echo the mood", func() {
				So(out.Mood, ShouldEqual, "Bored")
				So(out.Recommendations, ShouldHaveLength, 3)
				So(out.Recommendations[0].Title, ShouldEqual, "Spirited Away")
			})
		})

		Convey("When the limit is not positive", func() {
			out := tool.Recommend("happy", 0, cache.DefaultTTL)

			Convey("It should use the default", func() {
				So(out.Recommendations, ShouldHaveLength, DefaultLimit)
			})
		})
	})

	Convey("Given a generator that panics", t, func() {
		moodCache := cache.NewMoodCache(1)
		tool := NewRecommendationTool(moodCache, WithGenerator(
			func(string, int) []mood.Recommendation { panic("table unavailable") },
		))

		out := tool.Recommend("happy", 5, cache.DefaultTTL)

		Convey("It should return an empty, uncached result", func() {
			So(out.Cached, ShouldBeFalse)
			So(out.Recommendations, ShouldNotBeNil)
			So(out.Recommendations, ShouldBeEmpty)
			So(out.MoodChanged, ShouldBeNil)
		})

		Convey("It should leave the cache untouched", func() {
			_, has := moodCache.LastMood()
			So(has, ShouldBeFalse)
		})
	})
}

func TestRecommendationDefinition(t *testing.T) {
	Convey("Given the registry definition", t, func() {
		def := NewRecommendationTool(cache.NewMoodCache(1)).Definition()

		Convey("It should describe the tool", func() {
			So(def.ToolName, ShouldEqual, "movieRecommendation")
			So(def.Schema.Required, ShouldContain, "mood")
			So(def.Schema.Properties, ShouldContainKey, "cacheTTL")
		})

		Convey("It should decode JSON style arguments", func() {
			out, err := def.Executor(context.Background(), map[string]any{
				"mood":  "sad",
				"limit": float64(2),
			})

			So(err, ShouldBeNil)
			So(out.(*RecommendationOutput).Recommendations, ShouldHaveLength, 2)
		})

		Convey("It should require a mood", func() {
			_, err := def.Executor(context.Background(), map[string]any{})
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "mood is required")
		})
	})
}
