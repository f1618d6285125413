package openaicompat

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vaamtranscribe/internal/core/ports"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type     string `json:"type"`
			Text     string `json:"text"`
			ImageURL struct {
				URL string `json:"url"`
			} `json:"image_url"`
		} `json:"content"`
	} `json:"messages"`
}

func TestTranscribe(t *testing.T) {
	var got chatRequest
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Bonjour tout le monde"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	tr := NewTranscriber(Config{APIKey: "k", BaseURL: srv.URL + "/v1", Model: "gemini-2.5-flash"})
	video := []byte{0x00, 0x01, 0x02, 0xff}

	text, err := tr.Transcribe(context.Background(), ports.TranscribeRequest{Data: video, MIMEType: "video/webm"})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour tout le monde", text)

	assert.Equal(t, "/v1/chat/completions", path)
	assert.Equal(t, "Bearer k", auth)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 1)
	require.Len(t, got.Messages[0].Content, 2)
	assert.Equal(t, "image_url", got.Messages[0].Content[0].Type)
	assert.Equal(t, "data:video/webm;base64,"+base64.StdEncoding.EncodeToString(video), got.Messages[0].Content[0].ImageURL.URL)
	assert.Equal(t, "text", got.Messages[0].Content[1].Type)
	assert.NotEmpty(t, got.Messages[0].Content[1].Text)
}

func TestTranscribeErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"API key not valid","type":"invalid_request_error"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"id":"c1","choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			tr := NewTranscriber(Config{APIKey: "k", BaseURL: srv.URL, Model: "m"})
			_, err := tr.Transcribe(context.Background(), ports.TranscribeRequest{Data: []byte("x"), MIMEType: "video/mp4"})
			require.Error(t, err)
		})
	}
}
