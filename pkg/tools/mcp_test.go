package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/cinematch/pkg/cache"
	"github.com/theapemachine/cinematch/pkg/registry"
)

func TestHandler(t *testing.T) {
	Convey("Given the recommendation tool behind an MCP handler", t, func() {
		handler := Handler(NewRecommendationTool(cache.NewMoodCache(1)).Definition())

		req := mcp.CallToolRequest{}
		req.Params.Name = RecommendationToolName
		req.Params.Arguments = map[string]any{"mood": "happy", "limit": float64(1)}

		Convey("It should return the output as JSON text", func() {
			result, err := handler(context.Background(), req)

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeFalse)
			So(result.Content, ShouldHaveLength, 1)

			text := result.Content[0].(mcp.TextContent).Text
			So(text, ShouldContainSubstring, `"mood":"happy"`)
			So(text, ShouldContainSubstring, "The Grand Budapest Hotel")
		})

		Convey("It should report tool errors as error results", func() {
			req.Params.Arguments = map[string]any{}

			result, err := handler(context.Background(), req)

			So(err, ShouldBeNil)
			So(result.IsError, ShouldBeTrue)
		})
	})
}

func TestResultText(t *testing.T) {
	Convey("Strings should pass through verbatim", t, func() {
		So(ResultText("plain"), ShouldEqual, "plain")
	})

	Convey("Other values should be JSON encoded", t, func() {
		So(ResultText(map[string]int{"count": 2}), ShouldEqual, `{"count":2}`)
	})
}

func TestNewMCPServer(t *testing.T) {
	Convey("Given a registry with one tool", t, func() {
		tools := registry.NewRegistry(registry.ToolDefinition{
			ToolName: "broken",
			Executor: func(ctx context.Context, args map[string]any) (any, error) {
				return nil, errors.New("nope")
			},
		})

		Convey("It should build an MCP server", func() {
			So(NewMCPServer("cinematch", "test", tools), ShouldNotBeNil)
		})
	})
}
