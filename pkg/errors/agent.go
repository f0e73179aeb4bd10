package errors

import (
	"errors"
	"fmt"
)

/*
AgentNotFoundError is returned when a request targets an agent id that is not
registered in the agent catalog.
*/
type AgentNotFoundError struct {
	AgentID string
}

func (err *AgentNotFoundError) Error() string {
	return fmt.Sprintf("Agent '%s' not found", err.AgentID)
}

func IsAgentNotFound(err error) bool {
	var target *AgentNotFoundError
	return errors.As(err, &target)
}
