package classifier

import (
	"encoding/json"
	"strings"

	"github.com/theapemachine/cinematch/pkg/errors"
	"github.com/theapemachine/cinematch/pkg/mood"
)

type reply struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

/*
Parse extracts a Classification from a model reply. Models like to wrap JSON
in markdown fences or add a sentence around it, so everything outside the
outermost braces is ignored. A missing mood becomes mood.DefaultMood and a
missing or zero confidence becomes DefaultConfidence.
*/
func Parse(source, text string) (*Classification, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start < 0 || end < start {
		return nil, errors.NewUpstreamSchemaError(source, "", "reply contains no JSON object")
	}

	var out reply

	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, errors.NewUpstreamSchemaError(source, "", err.Error())
	}

	result := &Classification{
		Mood:       strings.TrimSpace(out.Mood),
		Confidence: out.Confidence,
	}

	if result.Mood == "" {
		result.Mood = mood.DefaultMood
	}

	if result.Confidence == 0 {
		result.Confidence = DefaultConfidence
	}

	return result, nil
}
