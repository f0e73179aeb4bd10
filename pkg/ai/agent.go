package ai

import (
	"context"
)

/*
Agent is anything that can answer a prompt, optionally calling tools along
the way.
*/
type Agent interface {
	ID() string
	Generate(ctx context.Context, prompt string, opts ...GenerateOption) (*Result, error)
}

/*
Result is what an agent produced for a prompt. ToolResults holds the output
of every successful tool call, in call order.
*/
type Result struct {
	Text        string
	ToolResults []any
}

type GenerateOptions struct {
	ContextID string
}

type GenerateOption func(*GenerateOptions)

// WithContextID ties the generation to a conversation, so the agent can load
// and extend its memory.
func WithContextID(contextID string) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.ContextID = contextID
	}
}

func NewGenerateOptions(opts ...GenerateOption) *GenerateOptions {
	out := &GenerateOptions{}

	for _, opt := range opts {
		opt(out)
	}

	return out
}
