package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultGeminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel      = "gemini-2.5-flash"
	defaultGeminiTTSModel   = "gemini-2.5-flash-preview-tts"
	defaultGeminiImageModel = "gemini-2.5-flash-image"
	defaultGeminiVideoModel = "gemini-2.5-pro"
	defaultGeminiVoice      = "Kore"
)

type GeminiClient struct {
	apiKey     string
	model      string
	ttsModel   string
	imageModel string
	videoModel string
	voice      string
	baseURL    string
	http       *http.Client
}

func NewGeminiClient() *GeminiClient {
	return &GeminiClient{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		model:      envOr("GEMINI_MODEL", defaultGeminiModel),
		ttsModel:   envOr("GEMINI_TTS_MODEL", defaultGeminiTTSModel),
		imageModel: envOr("GEMINI_IMAGE_MODEL", defaultGeminiImageModel),
		videoModel: envOr("GEMINI_VIDEO_MODEL", defaultGeminiVideoModel),
		voice:      envOr("GEMINI_VOICE", defaultGeminiVoice),
		baseURL:    envOr("GEMINI_BASE_URL", defaultGeminiBaseURL),
		http:       &http.Client{Timeout: 60 * time.Second},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// --------------------------------------------------
// Wire types
// --------------------------------------------------

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	GenerationConfig  map[string]any  `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (r *geminiResponse) parts() []geminiPart {
	if len(r.Candidates) == 0 {
		return nil
	}
	return r.Candidates[0].Content.Parts
}

func (r *geminiResponse) text() string {
	var b strings.Builder
	for _, p := range r.parts() {
		b.WriteString(p.Text)
	}
	return b.String()
}

func buildRequest(p Prompt) geminiRequest {
	req := geminiRequest{}
	for _, m := range p.Messages {
		role := m.Role
		if role == "" {
			role = RoleUser
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	if p.System != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: p.System}}}
	}
	return req
}

// generate posts to models/<model>:generateContent.
func (g *GeminiClient) generate(ctx context.Context, model string, payload geminiRequest) (*geminiResponse, error) {
	if g.apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if len(payload.Contents) == 0 {
		return nil, errors.New("empty prompt")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[LLM] gemini status=%d model=%s", resp.StatusCode, model)
		return nil, fmt.Errorf("gemini api error: %s", string(raw))
	}

	var result geminiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	if len(result.parts()) == 0 {
		return nil, ErrEmptyResponse
	}
	return &result, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (g *GeminiClient) GenerateText(ctx context.Context, p Prompt) (string, error) {
	resp, err := g.generate(ctx, g.model, buildRequest(p))
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

func (g *GeminiClient) GenerateJSON(ctx context.Context, p Prompt) (string, error) {
	req := buildRequest(p)
	req.GenerationConfig = map[string]any{
		"responseMimeType": "application/json",
		"temperature":      0.2,
	}

	resp, err := g.generate(ctx, g.model, req)
	if err != nil {
		return "", err
	}

	output := extractJSON(resp.text())
	if output == "" {
		return "", errors.New("gemini returned non-json output")
	}
	return output, nil
}

func (g *GeminiClient) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	req := buildRequest(UserPrompt(text))
	req.GenerationConfig = map[string]any{
		"responseModalities": []string{"AUDIO"},
		"speechConfig": map[string]any{
			"voiceConfig": map[string]any{
				"prebuiltVoiceConfig": map[string]string{"voiceName": g.voice},
			},
		},
	}

	resp, err := g.generate(ctx, g.ttsModel, req)
	if err != nil {
		return nil, err
	}

	for _, p := range resp.parts() {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return base64.StdEncoding.DecodeString(p.InlineData.Data)
		}
	}
	return nil, ErrEmptyResponse
}

func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	req := buildRequest(UserPrompt(prompt))
	req.GenerationConfig = map[string]any{
		"responseModalities": []string{"IMAGE", "TEXT"},
	}

	resp, err := g.generate(ctx, g.imageModel, req)
	if err != nil {
		return Image{}, err
	}

	for _, p := range resp.parts() {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
		if err != nil {
			return Image{}, fmt.Errorf("decode image: %w", err)
		}
		return Image{Data: data, MIMEType: p.InlineData.MimeType}, nil
	}

	// the model answered in text, usually a refusal
	if txt := resp.text(); txt != "" {
		return Image{}, fmt.Errorf("%w: %s", ErrNoImage, txt)
	}
	return Image{}, ErrNoImage
}

// AnalyzeMedia sends the attachment inline, ahead of the question. Videos go
// to the larger model.
func (g *GeminiClient) AnalyzeMedia(ctx context.Context, prompt string, media Media) (string, error) {
	if len(media.Data) == 0 {
		return "", errors.New("empty media")
	}

	model := g.model
	if media.IsVideo() {
		model = g.videoModel
	}

	req := geminiRequest{Contents: []geminiContent{{
		Role: RoleUser,
		Parts: []geminiPart{
			{InlineData: &geminiInlineData{
				MimeType: media.MIMEType,
				Data:     base64.StdEncoding.EncodeToString(media.Data),
			}},
			{Text: prompt},
		},
	}}}

	resp, err := g.generate(ctx, model, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.text()), nil
}
