package tools

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/cinematch/pkg/classifier"
	"github.com/theapemachine/cinematch/pkg/config"
	cmerrors "github.com/theapemachine/cinematch/pkg/errors"
	"github.com/theapemachine/cinematch/pkg/tmdb"
)

type fakeClassifier struct {
	result *classifier.Classification
	err    error
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*classifier.Classification, error) {
	f.calls++
	return f.result, f.err
}

type fakeCatalog struct {
	genre string
	limit int
	err   error
}

func (f *fakeCatalog) Recommend(ctx context.Context, genre string, limit int) ([]tmdb.Movie, error) {
	f.genre = genre
	f.limit = limit

	if f.err != nil {
		return nil, f.err
	}

	movies := make([]tmdb.Movie, 0, limit)
	for i := 0; i < limit; i++ {
		movies = append(movies, tmdb.Movie{ID: int64(i + 1), Title: "Movie", Genres: []string{}})
	}

	return movies, nil
}

func TestDiscoverTool(t *testing.T) {
	Convey("Given a discover tool with all credentials", t, func() {
		creds := &config.Credentials{TMDBAPIKey: "tmdb", GeminiAPIKey: "gemini"}
		cls := &fakeClassifier{result: &classifier.Classification{Mood: "chill", Confidence: 0.8}}
		catalog := &fakeCatalog{}

		tool := NewDiscoverTool(
			creds, classifier.BackendConfig{}, "",
			WithClassifier(cls), WithCatalog(catalog),
		)

		Convey("It should map the detected mood to a genre query", func() {
			out, err := tool.Discover(context.Background(), "lazy sunday", 3)

			So(err, ShouldBeNil)
			So(catalog.genre, ShouldEqual, "35,10749")
			So(catalog.limit, ShouldEqual, 3)
			So(out.DetectedMood, ShouldEqual, "chill")
			So(out.MoodConfidence, ShouldEqual, 0.8)
			So(out.Count, ShouldEqual, 3)
			So(out.Recommendations, ShouldHaveLength, 3)
		})

		Convey("It should fall back to drama for an unmapped mood", func() {
			cls.result = &classifier.Classification{Mood: "nostalgic", Confidence: 0.5}

			_, err := tool.Discover(context.Background(), "old photos", 5)

			So(err, ShouldBeNil)
			So(catalog.genre, ShouldEqual, "18")
		})

		Convey("It should surface catalog errors", func() {
			catalog.err = errors.New("No movies found for genre: 35,10749")

			_, err := tool.Discover(context.Background(), "lazy sunday", 5)

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldEqual, "No movies found for genre: 35,10749")
		})
	})

	Convey("Given missing credentials", t, func() {
		cls := &fakeClassifier{result: &classifier.Classification{Mood: "happy", Confidence: 1}}
		catalog := &fakeCatalog{}

		Convey("A missing TMDB key should fail before any call", func() {
			tool := NewDiscoverTool(
				&config.Credentials{GeminiAPIKey: "gemini"}, classifier.BackendConfig{}, "",
				WithClassifier(cls), WithCatalog(catalog),
			)

			_, err := tool.Discover(context.Background(), "hi", 5)

			So(cmerrors.IsConfigError(err), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "TMDB_API_KEY not configured")
			So(cls.calls, ShouldEqual, 0)
		})

		Convey("A missing classifier key should fail before any call", func() {
			tool := NewDiscoverTool(
				&config.Credentials{TMDBAPIKey: "tmdb"}, classifier.BackendConfig{Provider: "openai"}, "",
				WithClassifier(cls), WithCatalog(catalog),
			)

			_, err := tool.Discover(context.Background(), "hi", 5)

			So(err.Error(), ShouldEqual, "OPENAI_API_KEY not configured")
			So(cls.calls, ShouldEqual, 0)
			So(catalog.genre, ShouldBeEmpty)
		})
	})
}
