package ai

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/theapemachine/cinematch/pkg/errors"
)

type staticAgent struct {
	id string
}

func (agent *staticAgent) ID() string { return agent.id }

func (agent *staticAgent) Generate(ctx context.Context, prompt string, opts ...GenerateOption) (*Result, error) {
	return &Result{Text: prompt}, nil
}

func TestCatalog(t *testing.T) {
	Convey("Given a catalog with one agent", t, func() {
		catalog := NewCatalog(&staticAgent{id: "movieAgent"})

		Convey("It should resolve the agent by id", func() {
			agent, err := catalog.Get("movieAgent")
			So(err, ShouldBeNil)
			So(agent.ID(), ShouldEqual, "movieAgent")
		})

		Convey("It should report unknown agents", func() {
			_, err := catalog.Get("ghost")
			So(errors.IsAgentNotFound(err), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "Agent 'ghost' not found")
		})

		Convey("It should list its ids", func() {
			catalog.Add(&staticAgent{id: "echo"})
			So(catalog.IDs(), ShouldResemble, []string{"echo", "movieAgent"})
		})
	})
}

func TestGenerateOptions(t *testing.T) {
	Convey("WithContextID should set the context", t, func() {
		So(NewGenerateOptions(WithContextID("c1")).ContextID, ShouldEqual, "c1")
		So(NewGenerateOptions().ContextID, ShouldBeEmpty)
	})
}
