package tokens

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// Estimator counts tokens for prompt budgeting. All supported providers are
// approximated with the GPT-4 encoding; Claude and Gemini tokenize within a
// few percent of it for source code.
type Estimator struct {
	codec tokenizer.Codec
}

// NewEstimator creates an estimator for the given model name.
func NewEstimator(model string) (*Estimator, error) {
	tikModel := tokenizer.GPT4
	if strings.HasPrefix(model, "gpt-4o") {
		tikModel = tokenizer.GPT4o
	}
	codec, err := tokenizer.ForModel(tikModel)
	if err != nil {
		return nil, fmt.Errorf("creating tokenizer codec for model %s: %w", model, err)
	}
	return &Estimator{codec: codec}, nil
}

// Count returns the token count for text, falling back to a character-based
// estimate (4 chars per token) if the codec is unavailable or errors.
func (e *Estimator) Count(text string) int {
	if e == nil || e.codec == nil {
		return len(text) / 4
	}
	n, err := e.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return n
}
