package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClientSend(t *testing.T) {
	Convey("Given a sync agent server", t, func() {
		var (
			path    string
			request struct {
				JSONRPC string            `json:"jsonrpc"`
				Method  string            `json:"method"`
				Params  MessageSendParams `json:"params"`
			}
			reply = `{"jsonrpc":"2.0","id":"x","result":{"id":"t1","contextId":"c1","kind":"task",
				"status":{"state":"completed","timestamp":"2025-01-01T00:00:00.000Z"},"artifacts":[],"history":[]}}`
		)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			json.NewDecoder(r.Body).Decode(&request)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(reply))
		}))
		defer server.Close()

		client := NewClient(server.URL + "/")

		Convey("When sending a prompt", func() {
			task, err := client.Send(context.Background(), "movieAgent", "c1", "I feel happy")

			Convey("Then it should post message/send and return the task", func() {
				So(err, ShouldBeNil)
				So(path, ShouldEqual, "/a2a/agent/movieAgent")
				So(request.JSONRPC, ShouldEqual, "2.0")
				So(request.Method, ShouldEqual, "message/send")
				So(request.Params.ContextID, ShouldEqual, "c1")
				So(request.Params.Prompt(), ShouldEqual, "I feel happy")
				So(task.ID, ShouldEqual, "t1")
				So(task.Status.State, ShouldEqual, TaskStateCompleted)
			})
		})

		Convey("When the agent answers with an error", func() {
			reply = `{"jsonrpc":"2.0","id":null,"error":{"code":-32603,"message":"Internal error"}}`
			_, err := client.Send(context.Background(), "movieAgent", "", "hi")

			Convey("Then the rpc error should be returned", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "-32603")
			})
		})

		Convey("When the answer has neither result nor error", func() {
			reply = `{"jsonrpc":"2.0","id":"x"}`
			_, err := client.Send(context.Background(), "movieAgent", "", "hi")

			So(err, ShouldNotBeNil)
		})
	})
}

func TestDecodeSendParams(t *testing.T) {
	Convey("Given raw params", t, func() {
		Convey("Empty and null params should decode to the zero value", func() {
			for _, raw := range []string{"", "null", "  "} {
				params, err := DecodeSendParams(json.RawMessage(raw))
				So(err, ShouldBeNil)
				So(params.PushConfig(), ShouldBeNil)
				So(params.Prompt(), ShouldEqual, "")
			}
		})

		Convey("A full Telex payload should expose the callback and prompt", func() {
			params, err := DecodeSendParams(json.RawMessage(`{
				"message": {"role":"user","parts":[{"kind":"text","text":"sad"},{"kind":"text","text":"ignored"}]},
				"configuration": {"pushNotificationConfig": {"url":"https://hook","token":"tok"}}
			}`))

			So(err, ShouldBeNil)
			So(params.Prompt(), ShouldEqual, "sad")
			So(params.PushConfig().URL, ShouldEqual, "https://hook")
			So(params.PushConfig().Token, ShouldEqual, "tok")
		})

		Convey("Malformed params should fail", func() {
			_, err := DecodeSendParams(json.RawMessage(`{"message":`))
			So(err, ShouldNotBeNil)
		})
	})
}
