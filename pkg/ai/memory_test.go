package ai

import (
	"context"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMemory(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		memory, err := NewMemory(":memory:")
		So(err, ShouldBeNil)
		defer memory.Close()

		ctx := context.Background()

		Convey("An unknown context should have no history", func() {
			turns, err := memory.History(ctx, "nobody", 10)
			So(err, ShouldBeNil)
			So(turns, ShouldBeEmpty)
		})

		Convey("When turns are appended", func() {
			So(memory.Append(ctx, "ctx-1",
				Turn{Role: RoleUser, Content: "I feel happy"},
				Turn{Role: RoleModel, Content: "Try Paddington 2"},
				Turn{Role: RoleUser, Content: "Something else?"},
			), ShouldBeNil)
			So(memory.Append(ctx, "ctx-2", Turn{Role: RoleUser, Content: "other"}), ShouldBeNil)

			Convey("They come back oldest first", func() {
				turns, err := memory.History(ctx, "ctx-1", 0)
				So(err, ShouldBeNil)
				So(turns, ShouldHaveLength, 3)
				So(turns[0].Content, ShouldEqual, "I feel happy")
				So(turns[1].Role, ShouldEqual, RoleModel)
				So(turns[2].Content, ShouldEqual, "Something else?")
				So(turns[0].CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("A limit keeps only the latest turns", func() {
				turns, err := memory.History(ctx, "ctx-1", 2)
				So(err, ShouldBeNil)
				So(turns, ShouldHaveLength, 2)
				So(turns[0].Content, ShouldEqual, "Try Paddington 2")
				So(turns[1].Content, ShouldEqual, "Something else?")
			})

			Convey("Contexts do not leak into each other", func() {
				turns, _ := memory.History(ctx, "ctx-2", 10)
				So(turns, ShouldHaveLength, 1)
			})
		})
	})

	Convey("Given a file backed store", t, func() {
		path := filepath.Join(t.TempDir(), "memory.db")

		memory, err := NewMemory(path)
		So(err, ShouldBeNil)
		So(memory.Append(context.Background(), "ctx", Turn{Role: RoleUser, Content: "hello"}), ShouldBeNil)
		So(memory.Close(), ShouldBeNil)

		Convey("It should survive reopening", func() {
			reopened, err := NewMemory(path)
			So(err, ShouldBeNil)
			defer reopened.Close()

			turns, err := reopened.History(context.Background(), "ctx", 10)
			So(err, ShouldBeNil)
			So(turns, ShouldHaveLength, 1)
			So(turns[0].Content, ShouldEqual, "hello")
		})
	})
}
