package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"vaamtranscribe/internal/core/domain"
)

// Formatter writes the tool's stdout contract: the transcript on
// success, a single JSON error object on failure.
type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Transcript writes text followed by a newline.
func (f *Formatter) Transcript(text string) error {
	if strings.HasSuffix(text, "\n") {
		_, err := io.WriteString(f.w, text)
		return err
	}
	_, err := fmt.Fprintln(f.w, text)
	return err
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code       domain.Code `json:"code"`
	Message    string      `json:"message"`
	Details    string      `json:"details"`
	Suggestion string      `json:"suggestion"`
}

// Error writes err as a JSON error object.
func (f *Formatter) Error(err *domain.Error) error {
	env := errorEnvelope{
		Success: false,
		Error: errorBody{
			Code:       err.Code,
			Message:    err.Message,
			Details:    err.Details,
			Suggestion: err.Suggestion,
		},
	}
	enc := json.NewEncoder(f.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(env)
}
