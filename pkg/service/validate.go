package service

import (
	"github.com/cohesivestack/valgo"
	"github.com/theapemachine/cinematch/pkg/a2a"
)

const (
	missingPushConfig = "Missing pushNotificationConfig in request"
	missingPrompt     = "Could not find main prompt in message.parts[0].text"
)

/*
validatePushConfig reports whether the callback the result should go to is
usable. Both the url and the token have to be present and non-empty; whitespace counts as a value.
*/
func validatePushConfig(cfg *a2a.PushNotificationConfig) bool {
	var url, token string

	if cfg != nil {
		url, token = cfg.URL, cfg.Token
	}

	return valgo.Is(valgo.String(url, "url").Not().Empty()).
		Is(valgo.String(token, "token").Not().Empty()).
		Valid()
}

func validatePrompt(prompt string) bool {
	return valgo.Is(valgo.String(prompt, "prompt").Not().Empty()).Valid()
}
