package ports

import (
	"context"
	"io"
	"time"

	"vaamtranscribe/internal/core/domain"
)

// Resolver defines the contract for looking up playable media for a capture.
type Resolver interface {
	// Resolve fetches the media descriptor for the given capture id.
	// A descriptor with no playable URL is returned as-is; choosing
	// among formats is the caller's job.
	Resolve(ctx context.Context, id domain.CaptureID) (*domain.MediaDescriptor, error)
}

// Download is an open media stream.
type Download struct {
	Body        io.ReadCloser
	ContentType string
}

// Downloader defines the contract for fetching video files.
type Downloader interface {
	// Download fetches the media at the given URL.
	// The caller must close the returned Body.
	Download(ctx context.Context, mediaURL string) (*Download, error)
}

// Storage defines the contract for the temporary artifact store.
type Storage interface {
	// Prepare makes sure the scoped temp directory exists.
	Prepare(ctx context.Context) error

	// NewPath returns the path for a new artifact, derived from now.
	NewPath(format domain.Format, now time.Time) string

	// Save writes reader to path and returns the number of bytes written.
	Save(ctx context.Context, path string, reader io.Reader) (int64, error)

	// Read loads the whole artifact into memory.
	Read(ctx context.Context, path string) ([]byte, error)

	// Remove deletes the artifact. A missing file is not an error.
	Remove(path string) error
}

// TranscribeRequest is the media handed to a Transcriber.
type TranscribeRequest struct {
	Data     []byte
	MIMEType string
}

// Transcriber defines the contract for turning video into text.
type Transcriber interface {
	// Transcribe returns the model's text response verbatim.
	Transcribe(ctx context.Context, req TranscribeRequest) (string, error)
}
