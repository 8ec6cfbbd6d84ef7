package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// LLaMAClient talks to a Meta-style text endpoint. It only handles text.
type LLaMAClient struct {
	apiKey string
	model  string
	apiURL string
	http   *http.Client
}

func NewLLaMAClient() *LLaMAClient {
	return &LLaMAClient{
		apiKey: os.Getenv("LLAMA_API_KEY"),
		model:  os.Getenv("LLAMA_MODEL"),
		apiURL: os.Getenv("LLAMA_API_URL"),
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *LLaMAClient) GenerateText(ctx context.Context, p Prompt) (string, error) {
	if l.apiKey == "" {
		return "", errors.New("missing LLAMA_API_KEY")
	}

	payload := map[string]interface{}{
		"model":       l.model,
		"input":       flatten(p),
		"temperature": 0.1,
	}

	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		l.apiURL,
		bytes.NewBuffer(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+l.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] llama status=%d", resp.StatusCode)
		return "", errors.New("llama api error: " + string(raw))
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}

	// Variant A
	if v, ok := parsed["output_text"].(string); ok && v != "" {
		return v, nil
	}

	// Variant B
	if v, ok := parsed["generated_text"].(string); ok && v != "" {
		return v, nil
	}

	// Variant C
	if gen, ok := parsed["generation"].(map[string]interface{}); ok {
		if txt, ok := gen["text"].(string); ok && txt != "" {
			return txt, nil
		}
	}

	return "", ErrEmptyResponse
}

// GenerateJSON asks for text and cuts the JSON document out of it.
func (l *LLaMAClient) GenerateJSON(ctx context.Context, p Prompt) (string, error) {
	text, err := l.GenerateText(ctx, p)
	if err != nil {
		return "", err
	}

	jsonText := extractJSON(text)
	if jsonText == "" {
		return "", errors.New("llama did not return valid JSON")
	}
	return jsonText, nil
}

func (l *LLaMAClient) GenerateSpeech(context.Context, string) ([]byte, error) {
	return nil, ErrUnsupported
}

func (l *LLaMAClient) GenerateImage(context.Context, string) (Image, error) {
	return Image{}, ErrUnsupported
}

func (l *LLaMAClient) AnalyzeMedia(context.Context, string, Media) (string, error) {
	return "", ErrUnsupported
}

// flatten renders a chat prompt as one text input.
func flatten(p Prompt) string {
	var b strings.Builder
	if p.System != "" {
		b.WriteString(p.System)
		b.WriteString("\n\n")
	}
	for _, m := range p.Messages {
		if len(p.Messages) > 1 {
			b.WriteString(m.Role)
			b.WriteString(": ")
		}
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
