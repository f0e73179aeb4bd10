package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
	"github.com/theapemachine/cinematch/pkg/config"
	"github.com/theapemachine/cinematch/pkg/errors"
	"google.golang.org/genai"
)

var defaultModels = map[string]string{
	"gemini":    "gemini-2.0-flash",
	"openai":    "gpt-4o-mini",
	"anthropic": "claude-3-5-haiku-latest",
	"ollama":    "llama3.2",
}

/*
BackendConfig selects and configures a backend. BaseURL overrides the
provider's endpoint and is mostly useful for tests.
*/
type BackendConfig struct {
	Provider string
	Model    string
	BaseURL  string
}

/*
Preflight checks that the credential the provider needs is present, without
touching the network.
*/
func Preflight(provider string, creds *config.Credentials) error {
	if _, ok := defaultModels[provider]; !ok {
		return errors.NewConfigError("classifier.provider", "unknown provider "+provider)
	}

	key, name := creds.ClassifierKey(provider)
	if name != "" && key == "" {
		return errors.NewConfigError(name, "")
	}

	return nil
}

/*
NewBackend builds the backend for cfg.Provider. It fails with a ConfigError
if the provider's credential is missing.
*/
func NewBackend(ctx context.Context, cfg BackendConfig, creds *config.Credentials) (Backend, error) {
	if cfg.Provider == "" {
		cfg.Provider = "gemini"
	}

	if err := Preflight(cfg.Provider, creds); err != nil {
		return nil, err
	}

	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	key, _ := creds.ClassifierKey(cfg.Provider)

	switch cfg.Provider {
	case "openai":
		return NewOpenAIBackend(key, cfg.Model, cfg.BaseURL), nil
	case "anthropic":
		return NewAnthropicBackend(key, cfg.Model, cfg.BaseURL), nil
	case "ollama":
		host := cfg.BaseURL
		if host == "" {
			host = creds.OllamaHost
		}
		return NewOllamaBackend(cfg.Model, host)
	default:
		return NewGeminiBackend(ctx, key, cfg.Model, cfg.BaseURL)
	}
}

type GeminiBackend struct {
	client *genai.Client
	model  string
}

func NewGeminiBackend(ctx context.Context, apiKey, model, baseURL string) (*GeminiBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})

	if err != nil {
		return nil, err
	}

	return &GeminiBackend{client: client, model: model}, nil
}

func (backend *GeminiBackend) Name() string { return "gemini" }

func (backend *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := backend.client.Models.GenerateContent(
		ctx, backend.model, genai.Text(prompt), nil,
	)

	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

type OpenAIBackend struct {
	client openai.Client
	model  string
}

func NewOpenAIBackend(apiKey, model, baseURL string) *OpenAIBackend {
	opts := []openaioption.RequestOption{openaioption.WithAPIKey(apiKey)}

	if baseURL != "" {
		opts = append(opts, openaioption.WithBaseURL(baseURL))
	}

	return &OpenAIBackend{client: openai.NewClient(opts...), model: model}
}

func (backend *OpenAIBackend) Name() string { return "openai" }

func (backend *OpenAIBackend) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := backend.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(backend.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", errors.NewUpstreamSchemaError("openai", "choices", "is empty")
	}

	return completion.Choices[0].Message.Content, nil
}

type AnthropicBackend struct {
	client anthropic.Client
	model  string
}

func NewAnthropicBackend(apiKey, model, baseURL string) *AnthropicBackend {
	opts := []anthropicoption.RequestOption{anthropicoption.WithAPIKey(apiKey)}

	if baseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(baseURL))
	}

	return &AnthropicBackend{client: anthropic.NewClient(opts...), model: model}
}

func (backend *AnthropicBackend) Name() string { return "anthropic" }

func (backend *AnthropicBackend) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := backend.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(backend.model),
		MaxTokens: 256,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	return sb.String(), nil
}

type OllamaBackend struct {
	client *api.Client
	model  string
}

/*
NewOllamaBackend talks to the Ollama server at host, or to the one named by
OLLAMA_HOST when host is empty.
*/
func NewOllamaBackend(model, host string) (*OllamaBackend, error) {
	if host == "" {
		client, err := api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}

		return &OllamaBackend{client: client, model: model}, nil
	}

	base, err := url.Parse(host)
	if err != nil {
		return nil, errors.NewConfigError("OLLAMA_HOST", err.Error())
	}

	return &OllamaBackend{client: api.NewClient(base, http.DefaultClient), model: model}, nil
}

func (backend *OllamaBackend) Name() string { return "ollama" }

func (backend *OllamaBackend) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false

	req := &api.GenerateRequest{
		Model:  backend.model,
		Prompt: prompt,
		Stream: &stream,
		Format: json.RawMessage(`"json"`),
	}

	var sb strings.Builder

	err := backend.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})

	if err != nil {
		return "", err
	}

	return sb.String(), nil
}
