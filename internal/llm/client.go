package llm

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrUnsupported   = errors.New("operation not supported by this provider")
	ErrEmptyResponse = errors.New("empty llm response")
	ErrNoImage       = errors.New("llm response did not contain an image")
)

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Prompt is a provider-neutral generation request.
type Prompt struct {
	System   string
	Messages []Message
}

func UserPrompt(text string) Prompt {
	return Prompt{Messages: []Message{{Role: RoleUser, Text: text}}}
}

type Image struct {
	Data     []byte
	MIMEType string
}

// Media is a photo or clip sent inline with a prompt.
type Media struct {
	Data     []byte
	MIMEType string
}

func (m Media) IsVideo() bool {
	return strings.HasPrefix(m.MIMEType, "video/")
}

type Client interface {
	GenerateText(ctx context.Context, p Prompt) (string, error)
	// GenerateJSON returns raw JSON text; callers decode it.
	GenerateJSON(ctx context.Context, p Prompt) (string, error)
	// GenerateSpeech returns 16-bit mono PCM at 24 kHz.
	GenerateSpeech(ctx context.Context, text string) ([]byte, error)
	GenerateImage(ctx context.Context, prompt string) (Image, error)
	// AnalyzeMedia answers a text prompt about an attached photo or video.
	AnalyzeMedia(ctx context.Context, prompt string, media Media) (string, error)
}
