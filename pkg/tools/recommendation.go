package tools

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/cache"
	"github.com/theapemachine/cinematch/pkg/metrics"
	"github.com/theapemachine/cinematch/pkg/mood"
	"github.com/theapemachine/cinematch/pkg/registry"
)

const (
	RecommendationToolName = "movieRecommendation"
	DefaultLimit           = 5
)

/*
RecommendationOutput is what movieRecommendation returns. CacheAge is only
set on a cache hit, MoodChanged only when new recommendations were generated.
*/
type RecommendationOutput struct {
	Mood            string                `json:"mood"`
	Recommendations []mood.Recommendation `json:"recommendations"`
	Cached          bool                  `json:"cached"`
	Timestamp       string                `json:"timestamp"`
	CacheAge        *int64                `json:"cacheAge,omitempty"`
	MoodChanged     *bool                 `json:"moodChanged,omitempty"`
}

/*
RecommendationTool recommends curated movies for a mood and remembers its
last answers in a MoodCache.
*/
type RecommendationTool struct {
	tool     mcp.Tool
	cache    *cache.MoodCache
	generate func(mood string, limit int) []mood.Recommendation
	metrics  *metrics.Metrics
	ttl      time.Duration
}

type RecommendationOption func(*RecommendationTool)

// WithGenerator replaces the static mood table.
func WithGenerator(fn func(mood string, limit int) []mood.Recommendation) RecommendationOption {
	return func(tool *RecommendationTool) {
		tool.generate = fn
	}
}

func WithRecommendationMetrics(m *metrics.Metrics) RecommendationOption {
	return func(tool *RecommendationTool) {
		tool.metrics = m
	}
}

// WithDefaultTTL sets the cache TTL used when a call does not pass cacheTTL.
func WithDefaultTTL(ttl time.Duration) RecommendationOption {
	return func(tool *RecommendationTool) {
		if ttl > 0 {
			tool.ttl = ttl
		}
	}
}

func NewRecommendationTool(moodCache *cache.MoodCache, opts ...RecommendationOption) *RecommendationTool {
	tool := &RecommendationTool{
		cache:    moodCache,
		generate: mood.Recommend,
		ttl:      cache.DefaultTTL,
	}

	for _, opt := range opts {
		opt(tool)
	}

	tool.tool = mcp.NewTool(
		RecommendationToolName,
		mcp.WithDescription("Recommends movies based on user mood with intelligent caching"),
		mcp.WithString(
			"mood",
			mcp.Required(),
			mcp.Description("The user's current mood (e.g., happy, sad, excited, relaxed, scared)"),
		),
		mcp.WithNumber(
			"cacheTTL",
			mcp.DefaultNumber(float64(tool.ttl.Milliseconds())),
			mcp.Description(fmt.Sprintf("Cache time-to-live in milliseconds (default: %d)", tool.ttl.Milliseconds())),
		),
		mcp.WithNumber(
			"limit",
			mcp.DefaultNumber(DefaultLimit),
			mcp.Description("Number of movie recommendations to return (default: 5)"),
		),
	)

	return tool
}

func (tool *RecommendationTool) Definition() registry.ToolDefinition {
	return registry.ToolDefinition{
		SkillID:     "movie-recommendation",
		ToolName:    tool.tool.Name,
		Description: tool.tool.Description,
		Schema:      tool.tool.InputSchema,
		Executor: func(ctx context.Context, args map[string]any) (any, error) {
			moodArg, err := stringArg(args, "mood")
			if err != nil {
				return nil, err
			}

			ttl := time.Duration(
				numberArg(args, "cacheTTL", float64(tool.ttl.Milliseconds())),
			) * time.Millisecond

			return tool.Recommend(moodArg, limitArg(args), ttl), nil
		},
	}
}

/*
Recommend answers from the cache when it holds a fresh entry for exactly this
mood, and otherwise generates and caches a new list.
*/
func (tool *RecommendationTool) Recommend(moodArg string, limit int, ttl time.Duration) *RecommendationOutput {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if entry, age, ok := tool.cache.Fresh(moodArg, ttl); ok {
		seconds := int64(math.Round(age.Seconds()))
		log.Info("mood cache hit", "mood", moodArg, "age", seconds)
		tool.metrics.CacheLookup(true)

		recs := entry.Recommendations
		if limit < len(recs) {
			recs = recs[:limit]
		}

		return &RecommendationOutput{
			Mood:            moodArg,
			Recommendations: recs,
			Cached:          true,
			Timestamp:       a2a.Timestamp(entry.Timestamp),
			CacheAge:        &seconds,
		}
	}

	log.Info("mood cache miss", "mood", moodArg)
	tool.metrics.CacheLookup(false)

	now := tool.cache.Now()

	recs, err := tool.safeGenerate(moodArg, limit)
	if err != nil {
		log.Error("recommendation generation failed", "mood", moodArg, "error", err)

		return &RecommendationOutput{
			Mood:            moodArg,
			Recommendations: []mood.Recommendation{},
			Timestamp:       a2a.Timestamp(now),
		}
	}

	changed := tool.cache.Store(moodArg, recs, now)
	if changed {
		log.Info("mood changed", "mood", moodArg)
	}

	log.Info("generated recommendations", "mood", moodArg, "count", len(recs))

	return &RecommendationOutput{
		Mood:            moodArg,
		Recommendations: recs,
		Timestamp:       a2a.Timestamp(now),
		MoodChanged:     &changed,
	}
}

func (tool *RecommendationTool) safeGenerate(moodArg string, limit int) (recs []mood.Recommendation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	recs = tool.generate(moodArg, limit)
	if recs == nil {
		recs = []mood.Recommendation{}
	}

	return recs, nil
}
