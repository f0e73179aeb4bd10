package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/theapemachine/cinematch/pkg/errors"
)

/*
Credentials are the secrets CinemaMatch reads from the environment. They are
never written to the config file.
*/
type Credentials struct {
	TMDBAPIKey      string `env:"TMDB_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	OllamaHost      string `env:"OLLAMA_HOST"`
}

// LoadCredentials parses the credentials from the process environment.
func LoadCredentials() (*Credentials, error) {
	creds := &Credentials{}

	if err := env.Parse(creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// RequireTMDB fails with a ConfigError when no TMDB key is present.
func (creds *Credentials) RequireTMDB() error {
	if creds.TMDBAPIKey == "" {
		return errors.NewConfigError("TMDB_API_KEY", "")
	}

	return nil
}

func (creds *Credentials) RequireGemini() error {
	if creds.GeminiAPIKey == "" {
		return errors.NewConfigError("GEMINI_API_KEY", "")
	}

	return nil
}

/*
ClassifierKey returns the key the given classifier provider needs, and the
name of the variable it comes from. Ollama needs no key.
*/
func (creds *Credentials) ClassifierKey(provider string) (key string, name string) {
	switch provider {
	case "openai":
		return creds.OpenAIAPIKey, "OPENAI_API_KEY"
	case "anthropic":
		return creds.AnthropicAPIKey, "ANTHROPIC_API_KEY"
	case "ollama":
		return "", ""
	default:
		return creds.GeminiAPIKey, "GEMINI_API_KEY"
	}
}
