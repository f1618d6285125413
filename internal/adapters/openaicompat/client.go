package openaicompat

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"vaamtranscribe/internal/core/domain"
	"vaamtranscribe/internal/core/ports"
)

// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// ErrEmptyResponse is returned when the completion carried no choices.
var ErrEmptyResponse = errors.New("empty response from model")

// Config configures a Transcriber.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Prompt     string
	HTTPClient *http.Client
}

// Transcriber implements ports.Transcriber over any OpenAI-compatible
// chat completions API that accepts data-URL media parts. The video goes
// out as an image_url part; endpoints that only take images reject it.
type Transcriber struct {
	client *openai.Client
	model  string
	prompt string
}

// NewTranscriber creates a new Transcriber.
func NewTranscriber(cfg Config) *Transcriber {
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}
	prompt := cfg.Prompt
	if prompt == "" {
		prompt = domain.DefaultPrompt
	}
	return &Transcriber{
		client: openai.NewClientWithConfig(oc),
		model:  cfg.Model,
		prompt: prompt,
	}
}

// Transcribe sends the base64-encoded video and the prompt as one user message.
func (t *Transcriber) Transcribe(ctx context.Context, req ports.TranscribeRequest) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: dataURL(req.MIMEType, req.Data),
						},
					},
					{
						Type: openai.ChatMessagePartTypeText,
						Text: t.prompt,
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("calling chat completions API: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
