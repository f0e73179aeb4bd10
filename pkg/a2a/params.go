package a2a

import (
	"encoding/json"
	"strings"
)

/*
MessageSendParams are the params of a message/send style request as Telex
sends them.
*/
type MessageSendParams struct {
	Message       *Message                  `json:"message,omitempty"`
	ContextID     string                    `json:"contextId,omitempty"`
	TaskID        string                    `json:"taskId,omitempty"`
	Configuration *MessageSendConfiguration `json:"configuration,omitempty"`
	Metadata      map[string]any            `json:"metadata,omitempty"`
}

type MessageSendConfiguration struct {
	AcceptedOutputModes    []string                `json:"acceptedOutputModes,omitempty"`
	PushNotificationConfig *PushNotificationConfig `json:"pushNotificationConfig,omitempty"`
	Blocking               bool                    `json:"blocking,omitempty"`
}

// PushNotificationConfig carries the callback that receives the final task.
type PushNotificationConfig struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

/*
DecodeSendParams unmarshals raw JSON-RPC params. Empty or null params decode
to the zero value so that validation can report what is missing.
*/
func DecodeSendParams(raw json.RawMessage) (*MessageSendParams, error) {
	params := &MessageSendParams{}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return params, nil
	}

	if err := json.Unmarshal(raw, params); err != nil {
		return nil, err
	}

	return params, nil
}

// PushConfig returns the push notification config, or nil if any level of
// the configuration is missing.
func (params *MessageSendParams) PushConfig() *PushNotificationConfig {
	if params.Configuration == nil {
		return nil
	}

	return params.Configuration.PushNotificationConfig
}

func (params *MessageSendParams) Prompt() string {
	return params.Message.FirstText()
}
