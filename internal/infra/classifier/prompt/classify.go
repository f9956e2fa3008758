package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/darkwatch/internal/domain/classifier"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	categories := strings.Join(classifier.Categories, ", ")
	return fmt.Sprintf(`You are a dark-web content classification model. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- category must be exactly one of: %s.
- confidence is a number between 0 and 1.
- all_probabilities maps every category to a probability; they must sum to roughly 1.
- keywords lists the terms from the text that drove the decision, lowercase, at most 10.
- Content describing ordinary, legal activity is "Normal".

Schema (example with empty values):
{
  "category": "<string>",
  "confidence": 0.0,
  "keywords": ["<string>"],
  "all_probabilities": {"<category>": 0.0}
}`, categories)
}

// GetUserPrompt builds a compact user message around the text to classify.
func GetUserPrompt(text string) string {
	return fmt.Sprintf("Classify the following content and respond with the JSON per schema.\n\nContent:\n%s", text)
}

// ParseResult decodes the model reply into a classification result and
// rejects categories outside the known set.
func ParseResult(raw string) (*classifier.Result, error) {
	var res classifier.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return nil, fmt.Errorf("decoding model reply: %w", err)
	}
	if !classifier.KnownCategory(res.Category) {
		return nil, fmt.Errorf("model returned unknown category %q", res.Category)
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		return nil, fmt.Errorf("model returned confidence %v outside [0,1]", res.Confidence)
	}
	return &res, nil
}
