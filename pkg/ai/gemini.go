package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/errors"
	"github.com/theapemachine/cinematch/pkg/registry"
	"google.golang.org/genai"
)

const (
	DefaultAgentID  = "movieAgent"
	DefaultModel    = "gemini-2.0-flash"
	DefaultMaxSteps = 5
)

/*
GeminiAgent answers prompts with a Gemini model. Each step the model either
answers in text, which ends the generation, or asks for tool calls, whose
results are sent back for the next step.
*/
type GeminiAgent struct {
	id           string
	model        string
	instructions string
	maxSteps     int
	apiKey       string
	baseURL      string
	client       *genai.Client
	tools        *registry.Registry
	memory       *Memory
	historyLimit int
}

type GeminiAgentOption func(*GeminiAgent)

func WithID(id string) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		if id != "" {
			agent.id = id
		}
	}
}

func WithModel(model string) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		if model != "" {
			agent.model = model
		}
	}
}

func WithInstructions(instructions string) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		agent.instructions = instructions
	}
}

func WithMaxSteps(steps int) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		if steps > 0 {
			agent.maxSteps = steps
		}
	}
}

func WithTools(tools *registry.Registry) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		agent.tools = tools
	}
}

// WithMemory makes the agent remember the last historyLimit turns of every
// conversation it takes part in.
func WithMemory(memory *Memory, historyLimit int) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		agent.memory = memory
		agent.historyLimit = historyLimit
	}
}

// WithBaseURL points the client at another Gemini API endpoint.
func WithBaseURL(baseURL string) GeminiAgentOption {
	return func(agent *GeminiAgent) {
		agent.baseURL = baseURL
	}
}

func NewGeminiAgent(ctx context.Context, apiKey string, opts ...GeminiAgentOption) (*GeminiAgent, error) {
	if apiKey == "" {
		return nil, errors.NewConfigError("GEMINI_API_KEY", "")
	}

	agent := &GeminiAgent{
		id:           DefaultAgentID,
		model:        DefaultModel,
		instructions: MovieAgentInstructions,
		maxSteps:     DefaultMaxSteps,
		apiKey:       apiKey,
		tools:        registry.NewRegistry(),
	}

	for _, opt := range opts {
		opt(agent)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      agent.apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: agent.baseURL},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	agent.client = client
	return agent, nil
}

func (agent *GeminiAgent) ID() string {
	return agent.id
}

func (agent *GeminiAgent) Generate(
	ctx context.Context, prompt string, opts ...GenerateOption,
) (*Result, error) {
	options := NewGenerateOptions(opts...)

	contents, err := agent.history(ctx, options.ContextID)
	if err != nil {
		return nil, err
	}

	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(agent.instructions, genai.RoleUser),
		Tools:             convertTools(agent.tools.List()),
	}

	result := &Result{ToolResults: []any{}}

	for step := 0; step < agent.maxSteps; step++ {
		resp, err := agent.client.Models.GenerateContent(ctx, agent.model, contents, config)
		if err != nil {
			return nil, fmt.Errorf("gemini generation failed: %w", err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return nil, errors.NewUpstreamSchemaError("gemini", "candidates", "returned no content")
		}

		content := resp.Candidates[0].Content
		contents = append(contents, content)

		var (
			text  strings.Builder
			calls []*genai.FunctionCall
		)

		for _, part := range content.Parts {
			if part.FunctionCall != nil {
				calls = append(calls, part.FunctionCall)
			} else if part.Text != "" {
				text.WriteString(part.Text)
			}
		}

		if len(calls) == 0 {
			result.Text = text.String()

			if err := agent.remember(ctx, options.ContextID, prompt, result.Text); err != nil {
				log.Warn("failed to store conversation", "context", options.ContextID, "error", err)
			}

			return result, nil
		}

		responses := make([]*genai.Part, 0, len(calls))

		for _, call := range calls {
			log.Info("tool call", "agent", agent.id, "tool", call.Name, "step", step)

			out, err := agent.tools.Execute(ctx, call.Name, call.Args)
			if err != nil {
				log.Warn("tool call failed", "tool", call.Name, "error", err)
				responses = append(responses, genai.NewPartFromFunctionResponse(
					call.Name, map[string]any{"error": err.Error()},
				))
				continue
			}

			result.ToolResults = append(result.ToolResults, out)
			responses = append(responses, genai.NewPartFromFunctionResponse(
				call.Name, map[string]any{"output": out},
			))
		}

		contents = append(contents, genai.NewContentFromParts(responses, genai.RoleUser))
	}

	return nil, fmt.Errorf("agent %s gave no answer within %d steps", agent.id, agent.maxSteps)
}

func (agent *GeminiAgent) history(ctx context.Context, contextID string) ([]*genai.Content, error) {
	if agent.memory == nil || contextID == "" {
		return []*genai.Content{}, nil
	}

	turns, err := agent.memory.History(ctx, contextID, agent.historyLimit)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(turns)+1)

	for _, turn := range turns {
		var role genai.Role = genai.RoleUser
		if turn.Role == RoleModel {
			role = genai.RoleModel
		}

		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}

	return contents, nil
}

func (agent *GeminiAgent) remember(ctx context.Context, contextID, prompt, reply string) error {
	if agent.memory == nil || contextID == "" {
		return nil
	}

	return agent.memory.Append(ctx, contextID,
		Turn{Role: RoleUser, Content: prompt},
		Turn{Role: RoleModel, Content: reply},
	)
}
