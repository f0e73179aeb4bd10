package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/cinematch/pkg/mood"
)

// DefaultConfidence is reported when the model leaves confidence out.
const DefaultConfidence = 0.5

/*
Classification is the mood a model read out of the user's text.
*/
type Classification struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`
}

/*
Backend sends a single prompt to a language model and returns its raw text
reply.
*/
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

/*
Classifier turns free text into a Classification using a Backend.
*/
type Classifier struct {
	backend Backend
}

func New(backend Backend) *Classifier {
	return &Classifier{backend: backend}
}

func (classifier *Classifier) Classify(ctx context.Context, text string) (*Classification, error) {
	reply, err := classifier.backend.Complete(ctx, Prompt(text))
	if err != nil {
		return nil, fmt.Errorf("%s classification failed: %w", classifier.backend.Name(), err)
	}

	result, err := Parse(classifier.backend.Name(), reply)
	if err != nil {
		return nil, err
	}

	log.Debug("classified mood", "backend", classifier.backend.Name(), "mood", result.Mood, "confidence", result.Confidence)
	return result, nil
}

// Prompt builds the instruction every backend receives.
func Prompt(text string) string {
	return fmt.Sprintf(`Analyze the following user input and determine their current mood. Respond ONLY with valid JSON in this exact format:
{
  "mood": "one of: %s",
  "confidence": 0.0 to 1.0
}

User input: "%s"`, strings.Join(mood.ClassifierMoods(), ", "), text)
}
