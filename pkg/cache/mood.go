package cache

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/theapemachine/cinematch/pkg/mood"
)

// DefaultTTL is how long cached recommendations stay fresh.
const DefaultTTL = 30 * time.Minute

/*
Entry is one cached set of recommendations for a mood.
*/
type Entry struct {
	Mood            string
	Recommendations []mood.Recommendation
	Timestamp       time.Time
}

/*
MoodCache holds recently generated recommendations keyed by the mood string
exactly as it was asked for. With a size of 1 only the latest mood is kept, so
alternating between moods always misses.
*/
type MoodCache struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, Entry]
	lastMood string
	hasLast  bool
	now      func() time.Time
}

type MoodCacheOption func(*MoodCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MoodCacheOption {
	return func(c *MoodCache) {
		c.now = now
	}
}

func NewMoodCache(size int, opts ...MoodCacheOption) *MoodCache {
	if size < 1 {
		size = 1
	}

	// lru.New only fails for a non-positive size.
	entries, _ := lru.New[string, Entry](size)

	c := &MoodCache{
		entries: entries,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Now is the cache's notion of the current time.
func (c *MoodCache) Now() time.Time {
	return c.now()
}

/*
Fresh returns the entry for moodKey if it is younger than ttl and carries
recommendations, along with its age.
*/
func (c *MoodCache) Fresh(moodKey string, ttl time.Duration) (Entry, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries.Get(moodKey)
	if !ok || entry.Recommendations == nil {
		return Entry{}, 0, false
	}

	age := c.now().Sub(entry.Timestamp)
	if age >= ttl {
		log.Debug("mood cache stale", "mood", moodKey, "age", age)
		return Entry{}, age, false
	}

	return entry, age, true
}

/*
Store records recommendations for moodKey at the given time. It reports
whether a different mood was stored before this one.
*/
func (c *MoodCache) Store(moodKey string, recs []mood.Recommendation, at time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := c.hasLast && c.lastMood != moodKey

	c.entries.Add(moodKey, Entry{
		Mood:            moodKey,
		Recommendations: recs,
		Timestamp:       at,
	})

	c.lastMood = moodKey
	c.hasLast = true

	return changed
}

// LastMood returns the most recently stored mood, if any.
func (c *MoodCache) LastMood() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastMood, c.hasLast
}

func (c *MoodCache) Len() int {
	return c.entries.Len()
}

func (c *MoodCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Purge()
	c.lastMood = ""
	c.hasLast = false
}
