package tools

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/cinematch/pkg/classifier"
	"github.com/theapemachine/cinematch/pkg/config"
	"github.com/theapemachine/cinematch/pkg/mood"
	"github.com/theapemachine/cinematch/pkg/registry"
	"github.com/theapemachine/cinematch/pkg/tmdb"
)

const DiscoverToolName = "discoverMovies"

type DiscoverOutput struct {
	DetectedMood    string       `json:"detectedMood"`
	MoodConfidence  float64      `json:"moodConfidence"`
	Recommendations []tmdb.Movie `json:"recommendations"`
	Count           int          `json:"count"`
}

// MoodClassifier is satisfied by *classifier.Classifier.
type MoodClassifier interface {
	Classify(ctx context.Context, text string) (*classifier.Classification, error)
}

// MovieCatalog is satisfied by *tmdb.Client.
type MovieCatalog interface {
	Recommend(ctx context.Context, genre string, limit int) ([]tmdb.Movie, error)
}

/*
DiscoverTool detects the user's mood with a language model and asks TMDB for
popular movies in the matching genre.
*/
type DiscoverTool struct {
	tool       mcp.Tool
	creds      *config.Credentials
	backendCfg classifier.BackendConfig
	tmdbURL    string

	mu         sync.Mutex
	classifier MoodClassifier
	catalog    MovieCatalog
}

type DiscoverOption func(*DiscoverTool)

func WithClassifier(c MoodClassifier) DiscoverOption {
	return func(tool *DiscoverTool) {
		tool.classifier = c
	}
}

func WithCatalog(c MovieCatalog) DiscoverOption {
	return func(tool *DiscoverTool) {
		tool.catalog = c
	}
}

func NewDiscoverTool(
	creds *config.Credentials,
	backendCfg classifier.BackendConfig,
	tmdbURL string,
	opts ...DiscoverOption,
) *DiscoverTool {
	tool := &DiscoverTool{
		tool: mcp.NewTool(
			DiscoverToolName,
			mcp.WithDescription(
				"Get movie recommendations by analyzing user input to determine mood, then fetching from TMDB",
			),
			mcp.WithString(
				"userInput",
				mcp.Required(),
				mcp.Description("User's description of their current state or what they want to watch"),
			),
			mcp.WithNumber(
				"limit",
				mcp.DefaultNumber(DefaultLimit),
				mcp.Description("Number of recommendations to return"),
			),
		),
		creds:      creds,
		backendCfg: backendCfg,
		tmdbURL:    tmdbURL,
	}

	for _, opt := range opts {
		opt(tool)
	}

	return tool
}

func (tool *DiscoverTool) Definition() registry.ToolDefinition {
	return registry.ToolDefinition{
		SkillID:     "movie-discovery",
		ToolName:    tool.tool.Name,
		Description: tool.tool.Description,
		Schema:      tool.tool.InputSchema,
		Executor: func(ctx context.Context, args map[string]any) (any, error) {
			userInput, err := stringArg(args, "userInput")
			if err != nil {
				return nil, err
			}

			return tool.Discover(ctx, userInput, limitArg(args))
		},
	}
}

// Ready reports a ConfigError if a credential the tool needs is missing.
func (tool *DiscoverTool) Ready() error {
	if err := tool.creds.RequireTMDB(); err != nil {
		return err
	}

	return classifier.Preflight(tool.provider(), tool.creds)
}

func (tool *DiscoverTool) Discover(ctx context.Context, userInput string, limit int) (*DiscoverOutput, error) {
	if err := tool.Ready(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	cls, catalog, err := tool.dependencies(ctx)
	if err != nil {
		return nil, err
	}

	detected, err := cls.Classify(ctx, userInput)
	if err != nil {
		return nil, err
	}

	genre := mood.Genre(detected.Mood)
	log.Info("discovering movies", "mood", detected.Mood, "confidence", detected.Confidence, "genre", genre)

	movies, err := catalog.Recommend(ctx, genre, limit)
	if err != nil {
		return nil, err
	}

	return &DiscoverOutput{
		DetectedMood:    detected.Mood,
		MoodConfidence:  detected.Confidence,
		Recommendations: movies,
		Count:           len(movies),
	}, nil
}

func (tool *DiscoverTool) provider() string {
	if tool.backendCfg.Provider == "" {
		return "gemini"
	}

	return tool.backendCfg.Provider
}

func (tool *DiscoverTool) dependencies(ctx context.Context) (MoodClassifier, MovieCatalog, error) {
	tool.mu.Lock()
	defer tool.mu.Unlock()

	if tool.classifier == nil {
		backend, err := classifier.NewBackend(ctx, tool.backendCfg, tool.creds)
		if err != nil {
			return nil, nil, err
		}

		tool.classifier = classifier.New(backend)
	}

	if tool.catalog == nil {
		tool.catalog = tmdb.NewClient(tool.tmdbURL, tool.creds.TMDBAPIKey)
	}

	return tool.classifier, tool.catalog, nil
}
