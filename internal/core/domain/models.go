package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// ShareURLPattern matches a Vaam share link and captures the capture id.
var ShareURLPattern = regexp.MustCompile(`^https://app\.vaam\.io/share/([\w-]+)$`)

// CaptureID identifies one recording on the Vaam side. Opaque to us.
type CaptureID string

// Format is the encoding of a playable media URL.
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
	FormatHLS  Format = "hls"
)

// FormatPriority is the order in which playable URLs are preferred.
var FormatPriority = []Format{FormatMP4, FormatWebM, FormatHLS}

var formatMIMETypes = map[Format]string{
	FormatMP4:  "video/mp4",
	FormatWebM: "video/webm",
	FormatHLS:  "video/mp4",
}

var formatExtensions = map[Format]string{
	FormatMP4:  ".mp4",
	FormatWebM: ".webm",
	FormatHLS:  ".m3u8",
}

// MIMEType returns the type submitted to the model when the media host
// does not report a usable one.
func (f Format) MIMEType() string {
	if t, ok := formatMIMETypes[f]; ok {
		return t
	}
	return "video/mp4"
}

// Extension returns the file extension for a downloaded artifact.
func (f Format) Extension() string {
	if ext, ok := formatExtensions[f]; ok {
		return ext
	}
	return ".bin"
}

// MediaDescriptor holds the alternative playable URLs for one capture.
// An empty field means the format is not available.
type MediaDescriptor struct {
	MP4  string `json:"mp4,omitempty"`
	WebM string `json:"webm,omitempty"`
	HLS  string `json:"hls,omitempty"`
}

// Media is one selected playable URL.
type Media struct {
	Format Format
	URL    string
}

// URL returns the descriptor's URL for the given format.
func (d MediaDescriptor) URL(f Format) string {
	switch f {
	case FormatMP4:
		return d.MP4
	case FormatWebM:
		return d.WebM
	case FormatHLS:
		return d.HLS
	}
	return ""
}

// Select returns the first present URL in FormatPriority order.
func (d MediaDescriptor) Select() (Media, bool) {
	for _, f := range FormatPriority {
		if u := d.URL(f); u != "" {
			return Media{Format: f, URL: u}, true
		}
	}
	return Media{}, false
}

// Invocation carries the state of a single transcription run.
type Invocation struct {
	ID        string
	ShareURL  string
	Verbose   bool
	StartedAt time.Time

	// TempPath is the downloaded artifact, set once the file has been
	// created. Empty until then.
	TempPath string
}

// NewInvocation starts a run for the given share URL.
func NewInvocation(shareURL string, verbose bool) *Invocation {
	return &Invocation{
		ID:        uuid.New().String(),
		ShareURL:  shareURL,
		Verbose:   verbose,
		StartedAt: time.Now().UTC(),
	}
}

// ParseShareURL validates raw against ShareURLPattern and returns the
// capture id it carries.
func ParseShareURL(raw string) (CaptureID, error) {
	m := ShareURLPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", NewError(CodeInvalidURL, raw, nil)
	}
	return CaptureID(m[1]), nil
}

// DefaultPrompt is the instruction sent alongside the video.
const DefaultPrompt = `Transcribe all spoken content in this video.
Keep the original language; do not translate.
Also include any text that appears on screen.
Do not include timestamps.
Return only the transcript as plain text.`
