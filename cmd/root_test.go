package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theapemachine/cinematch/pkg/a2a"
	"github.com/theapemachine/cinematch/pkg/tmdb"
)

func embeddedConfig(t *testing.T) *viper.Viper {
	t.Helper()

	raw, err := embedded.ReadFile("cfg/config.yml")
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigType("yml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(raw)))

	return v
}

func TestEmbeddedConfigDefaults(t *testing.T) {
	v := embeddedConfig(t)

	tests := []struct {
		key  string
		want any
	}{
		{"server.mode", "webhook"},
		{"server.port", 3210},
		{"dispatch.workers", 4},
		{"dispatch.buffer", 256},
		{"agent.id", "movieAgent"},
		{"agent.maxSteps", 5},
		{"cache.size", 1},
		{"memory.path", ":memory:"},
		{"tmdb.baseUrl", tmdb.DefaultBaseURL},
		{"classifier.provider", "gemini"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.EqualValues(t, tt.want, v.Get(tt.key))
		})
	}

	assert.Equal(t, "30m0s", v.GetDuration("cache.ttl").String())
	assert.Equal(t, "30s", v.GetDuration("push.timeout").String())
}

func TestEmbeddedConfigCard(t *testing.T) {
	card := a2a.NewAgentCardFromConfig(embeddedConfig(t))

	assert.Equal(t, "CinemaMatch Movie Agent", card.Name)
	assert.True(t, card.Capabilities.PushNotifications)
	assert.Len(t, card.Skills, 2)
	assert.Equal(t, "movie-recommendation", card.Skills[0].ID)
	assert.Equal(t, "movie-discovery", card.Skills[1].ID)
}

func TestMovieMeta(t *testing.T) {
	assert.Equal(t, "★ 7.5 · 2017-11-10 · 104 min · Comedy, Family", movieMeta(tmdb.Movie{
		Rating:      7.5,
		ReleaseDate: "2017-11-10",
		Runtime:     104,
		Genres:      []string{"Comedy", "Family"},
	}))

	assert.Equal(t, "★ 0.0", movieMeta(tmdb.Movie{}))
}
