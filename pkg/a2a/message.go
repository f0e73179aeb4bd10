package a2a

import (
	"strings"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"

	KindMessage = "message"
	KindTask    = "task"
)

/*
Message represents all non‑artifact communication between client & agent.
*/
type Message struct {
	Kind      string         `json:"kind,omitempty"`
	Role      string         `json:"role"`
	Parts     []Part         `json:"parts"`
	MessageID string         `json:"messageId,omitempty"`
	TaskID    string         `json:"taskId,omitempty"`
	ContextID string         `json:"contextId,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

/*
NewAgentMessage wraps text in a single-part agent message with a fresh id.
*/
func NewAgentMessage(text string) *Message {
	return &Message{
		Kind:      KindMessage,
		Role:      RoleAgent,
		Parts:     []Part{NewTextPart(text)},
		MessageID: uuid.NewString(),
	}
}

/*
FirstText returns the text of the first part, which is where Telex puts the
user's prompt. It returns "" if there is no first part.
*/
func (msg *Message) FirstText() string {
	if msg == nil || len(msg.Parts) == 0 {
		return ""
	}

	return msg.Parts[0].Text
}

func (msg *Message) String() string {
	var sb strings.Builder

	for _, part := range msg.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String()
}
