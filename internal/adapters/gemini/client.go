package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"vaamtranscribe/internal/core/domain"
	"vaamtranscribe/internal/core/ports"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty response from Gemini")

// Config configures a Transcriber.
type Config struct {
	APIKey string
	Model  string
	Prompt string

	// BaseURL overrides the Gemini API endpoint. Tests point it at a fake.
	BaseURL    string
	HTTPClient *http.Client
}

// Transcriber implements ports.Transcriber with the Gemini API.
type Transcriber struct {
	cfg Config
}

// NewTranscriber creates a new Transcriber.
func NewTranscriber(cfg Config) *Transcriber {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Prompt == "" {
		cfg.Prompt = domain.DefaultPrompt
	}
	return &Transcriber{cfg: cfg}
}

// Transcribe sends the video inline with the instruction prompt. The
// SDK base64-encodes the inline data on the wire.
func (t *Transcriber) Transcribe(ctx context.Context, req ports.TranscribeRequest) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     t.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: t.cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: t.cfg.BaseURL,
		},
	})
	if err != nil {
		return "", fmt.Errorf("creating Gemini client: %w", err)
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(req.Data, req.MIMEType),
		genai.NewPartFromText(t.cfg.Prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, t.cfg.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
