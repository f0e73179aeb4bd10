package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/dispatch"
	"github.com/theapemachine/cinematch/pkg/errors"
	"github.com/tj/assert"
)

type fakeAgent struct {
	id     string
	reply  *ai.Result
	err    error
	calls  atomic.Int32
	prompt atomic.Value
	ctxID  atomic.Value
}

func (agent *fakeAgent) ID() string {
	return agent.id
}

func (agent *fakeAgent) Generate(
	ctx context.Context, prompt string, opts ...ai.GenerateOption,
) (*ai.Result, error) {
	agent.calls.Add(1)
	agent.prompt.Store(prompt)
	agent.ctxID.Store(ai.NewGenerateOptions(opts...).ContextID)

	if agent.err != nil {
		return nil, agent.err
	}

	return agent.reply, nil
}

type delivery struct {
	target  a2a.PushNotificationConfig
	payload json.RawMessage
}

type fakePusher struct {
	mu         sync.Mutex
	deliveries []delivery
	done       chan struct{}
}

func newFakePusher() *fakePusher {
	return &fakePusher{done: make(chan struct{}, 16)}
}

func (pusher *fakePusher) Deliver(
	ctx context.Context, target *a2a.PushNotificationConfig, payload any,
) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	pusher.mu.Lock()
	pusher.deliveries = append(pusher.deliveries, delivery{target: *target, payload: buf})
	pusher.mu.Unlock()

	pusher.done <- struct{}{}
	return nil
}

func (pusher *fakePusher) count() int {
	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	return len(pusher.deliveries)
}

func (pusher *fakePusher) wait(t *testing.T) delivery {
	t.Helper()

	select {
	case <-pusher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	pusher.mu.Lock()
	defer pusher.mu.Unlock()
	return pusher.deliveries[len(pusher.deliveries)-1]
}

// taskResponse mirrors the JSON-RPC envelope the server produces, with the
// result decoded as a task.
type taskResponse struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      json.RawMessage  `json:"id"`
	Result  *a2a.Task        `json:"result"`
	Error   *errors.RpcError `json:"error"`
}

func decodeTaskResponse(t *testing.T, raw []byte) taskResponse {
	t.Helper()

	var out taskResponse
	assert.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func newWebhookServer(t *testing.T, agents ...ai.Agent) (*Server, *fakePusher) {
	t.Helper()

	queue := dispatch.NewQueue(2, 8)
	pusher := newFakePusher()

	t.Cleanup(func() {
		queue.Shutdown(context.Background())
	})

	return NewServer(
		ai.NewCatalog(agents...),
		WithMode(ModeWebhook),
		WithQueue(queue),
		WithPusher(pusher),
	), pusher
}

func newSyncServer(agents ...ai.Agent) *Server {
	return NewServer(ai.NewCatalog(agents...), WithMode(ModeSync))
}

type sendOptions struct {
	id        any
	taskID    string
	contextID string
	url       string
	token     string
	text      string
	noConfig  bool
	noParts   bool
	messageID string
	role      string
	noRole    bool
}

func sendBody(opts sendOptions) string {
	params := map[string]any{}

	message := map[string]any{
		"kind": "message",
		"role": "user",
	}

	if opts.role != "" {
		message["role"] = opts.role
	}

	if opts.noRole {
		delete(message, "role")
	}

	if opts.messageID != "" {
		message["messageId"] = opts.messageID
	}

	if !opts.noParts {
		message["parts"] = []map[string]any{{"kind": "text", "text": opts.text}}
	}

	params["message"] = message

	if opts.taskID != "" {
		params["taskId"] = opts.taskID
	}

	if opts.contextID != "" {
		params["contextId"] = opts.contextID
	}

	if !opts.noConfig {
		params["configuration"] = map[string]any{
			"pushNotificationConfig": map[string]any{
				"url":   opts.url,
				"token": opts.token,
			},
		}
	}

	body, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      opts.id,
		"method":  "message/send",
		"params":  params,
	})

	return string(body)
}

func post(t *testing.T, srv *Server, path, body string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req)
	assert.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	resp.Body.Close()

	return resp, raw
}
