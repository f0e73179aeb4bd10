package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/theapemachine/cinematch/pkg/errors"
)

/*
Client talks to a CinemaMatch agent served in synchronous mode.
*/
type Client struct {
	baseURL string
	conn    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		conn:    &http.Client{},
	}
}

type sendRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      string            `json:"id"`
	Method  string            `json:"method"`
	Params  MessageSendParams `json:"params"`
}

type sendResponse struct {
	Result *Task            `json:"result,omitempty"`
	Error  *errors.RpcError `json:"error,omitempty"`
}

/*
Send posts a single user prompt to the agent and returns the completed task.
*/
func (client *Client) Send(
	ctx context.Context, agentID, contextID, prompt string,
) (*Task, error) {
	body, err := json.Marshal(sendRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  "message/send",
		Params: MessageSendParams{
			Message: &Message{
				Kind:      KindMessage,
				Role:      RoleUser,
				Parts:     []Part{NewTextPart(prompt)},
				MessageID: uuid.NewString(),
			},
			ContextID: contextID,
		},
	})

	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/a2a/agent/%s", client.baseURL, agentID)
	log.Debug("sending message", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.conn.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach agent: %w", err)
	}
	defer resp.Body.Close()

	var out sendResponse

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode agent response (HTTP %d): %w", resp.StatusCode, err)
	}

	if out.Error != nil {
		return nil, out.Error
	}

	if out.Result == nil {
		return nil, errors.NewUpstreamSchemaError("agent", "result", "is missing")
	}

	return out.Result, nil
}
