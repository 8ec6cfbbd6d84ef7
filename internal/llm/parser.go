package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Suggestion is one recommended item as returned by the model.
type Suggestion struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
	ItemType string  `json:"itemType,omitempty"`
}

// ParseSuggestions asks the client for a JSON array of suggestions.
func ParseSuggestions(
	ctx context.Context,
	client Client,
	p Prompt,
) ([]Suggestion, error) {

	rawJSON, err := client.GenerateJSON(ctx, p)
	if err != nil {
		return nil, err
	}

	var parsed []Suggestion
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		// some models wrap the array in an object
		var wrapped struct {
			Items []Suggestion `json:"items"`
		}
		if err2 := json.Unmarshal([]byte(rawJSON), &wrapped); err2 != nil {
			return nil, errors.New("invalid LLM JSON output")
		}
		parsed = wrapped.Items
	}

	return parsed, nil
}

// extractJSON cuts the outermost JSON object or array out of text, dropping
// markdown fences and chatter. Returns "" when nothing valid is found.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if json.Valid([]byte(text)) {
		return text
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return ""
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}

	end := strings.LastIndex(text, closer)
	if end <= start {
		return ""
	}
	if candidate := text[start : end+1]; json.Valid([]byte(candidate)) {
		return candidate
	}
	return ""
}
