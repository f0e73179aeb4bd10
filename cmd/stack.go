package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/theapemachine/cinematch/pkg/ai"
	"github.com/theapemachine/cinematch/pkg/cache"
	"github.com/theapemachine/cinematch/pkg/classifier"
	"github.com/theapemachine/cinematch/pkg/config"
	"github.com/theapemachine/cinematch/pkg/metrics"
	"github.com/theapemachine/cinematch/pkg/registry"
	"github.com/theapemachine/cinematch/pkg/tmdb"
	"github.com/theapemachine/cinematch/pkg/tools"
)

/*
toolStack holds the tools every command shares, built from the config file
and the environment.
*/
type toolStack struct {
	creds          *config.Credentials
	moodCache      *cache.MoodCache
	recommendation *tools.RecommendationTool
	discover       *tools.DiscoverTool
	registry       *registry.Registry
}

func newToolStack(m *metrics.Metrics) (*toolStack, error) {
	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	moodCache := cache.NewMoodCache(viper.GetInt("cache.size"))

	recommendation := tools.NewRecommendationTool(
		moodCache,
		tools.WithDefaultTTL(viper.GetDuration("cache.ttl")),
		tools.WithRecommendationMetrics(m),
	)

	tmdbURL := viper.GetString("tmdb.baseUrl")
	if tmdbURL == "" {
		tmdbURL = tmdb.DefaultBaseURL
	}

	discover := tools.NewDiscoverTool(
		creds,
		classifier.BackendConfig{
			Provider: viper.GetString("classifier.provider"),
			Model:    viper.GetString("classifier.model"),
		},
		tmdbURL,
		tools.WithCatalog(tmdb.NewClient(
			tmdbURL,
			creds.TMDBAPIKey,
			tmdb.WithConcurrency(viper.GetInt("tmdb.concurrency")),
		)),
	)

	if err := discover.Ready(); err != nil {
		log.Warn("discoverMovies will fail until configured", "error", err)
	}

	return &toolStack{
		creds:          creds,
		moodCache:      moodCache,
		recommendation: recommendation,
		discover:       discover,
		registry: registry.NewRegistry(
			recommendation.Definition(),
			discover.Definition(),
		),
	}, nil
}

/*
newMovieAgent builds the Gemini-backed agent with the shared tools and a
conversation memory. The caller owns the returned memory and must close it.
*/
func newMovieAgent(ctx context.Context, stack *toolStack) (*ai.GeminiAgent, *ai.Memory, error) {
	if err := stack.creds.RequireGemini(); err != nil {
		return nil, nil, err
	}

	path := viper.GetString("memory.path")
	if path == "" {
		path = ":memory:"
	}

	memory, err := ai.NewMemory(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open memory: %w", err)
	}

	agent, err := ai.NewGeminiAgent(
		ctx,
		stack.creds.GeminiAPIKey,
		ai.WithID(viper.GetString("agent.id")),
		ai.WithModel(viper.GetString("agent.model")),
		ai.WithMaxSteps(viper.GetInt("agent.maxSteps")),
		ai.WithInstructions(ai.MovieAgentInstructions),
		ai.WithTools(stack.registry),
		ai.WithMemory(memory, viper.GetInt("memory.historyLimit")),
	)

	if err != nil {
		memory.Close()
		return nil, nil, err
	}

	return agent, memory, nil
}
