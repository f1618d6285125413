package domain

import (
	"errors"
	"fmt"
)

// Code identifies a failure kind reported to the user.
type Code string

const (
	CodeMissingArgument       Code = "MISSING_ARGUMENT"
	CodeInvalidURL            Code = "INVALID_URL"
	CodeMissingAPIKey         Code = "MISSING_API_KEY"
	CodeVideoExtractionFailed Code = "VIDEO_EXTRACTION_FAILED"
	CodeVideoDownloadFailed   Code = "VIDEO_DOWNLOAD_FAILED"
	CodeTranscriptionFailed   Code = "TRANSCRIPTION_FAILED"
)

// Class groups codes by who is at fault.
type Class string

const (
	ClassValidation Class = "validation"
	ClassRuntime    Class = "runtime"
)

var classExitCodes = map[Class]int{
	ClassValidation: 1,
	ClassRuntime:    2,
}

type codeInfo struct {
	class      Class
	message    string
	suggestion string
}

var codes = map[Code]codeInfo{
	CodeMissingArgument: {
		class:      ClassValidation,
		message:    "No Vaam share URL provided",
		suggestion: "Usage: vaam-transcribe [--verbose] https://app.vaam.io/share/<id>",
	},
	CodeInvalidURL: {
		class:      ClassValidation,
		message:    "Invalid Vaam share URL",
		suggestion: "Use a URL of the form https://app.vaam.io/share/<id>",
	},
	CodeMissingAPIKey: {
		class:      ClassValidation,
		message:    "GEMINI_API_KEY environment variable is not set",
		suggestion: "Export GEMINI_API_KEY or add gemini_api_key to the config file",
	},
	CodeVideoExtractionFailed: {
		class:      ClassRuntime,
		message:    "Could not extract a playable video from the share link",
		suggestion: "Check that the share link is public and still exists",
	},
	CodeVideoDownloadFailed: {
		class:      ClassRuntime,
		message:    "Failed to download the video",
		suggestion: "Check your network connection and try again",
	},
	CodeTranscriptionFailed: {
		class:      ClassRuntime,
		message:    "Failed to transcribe the video",
		suggestion: "Verify the API key is valid and the video is not too large for the model",
	},
}

// knownCodes returns every code in the taxonomy.
func knownCodes() []Code {
	return []Code{
		CodeMissingArgument,
		CodeInvalidURL,
		CodeMissingAPIKey,
		CodeVideoExtractionFailed,
		CodeVideoDownloadFailed,
		CodeTranscriptionFailed,
	}
}

// Class returns the class of c. Unknown codes are runtime failures.
func (c Code) Class() Class {
	if info, ok := codes[c]; ok {
		return info.class
	}
	return ClassRuntime
}

// ExitCode returns the process exit status for c.
func (c Code) ExitCode() int {
	return classExitCodes[c.Class()]
}

// Error is a failure with a user-facing code.
type Error struct {
	Code       Code
	Message    string
	Details    string
	Suggestion string
	Err        error
}

// NewError builds an Error for code with the default message and
// suggestion. details is free-form context; err is the underlying cause.
func NewError(code Code, details string, err error) *Error {
	info := codes[code]
	if details == "" && err != nil {
		details = err.Error()
	}
	return &Error{
		Code:       code,
		Message:    info.message,
		Details:    details,
		Suggestion: info.suggestion,
		Err:        err,
	}
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, e.Details)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns err as an *Error. Errors outside the taxonomy are
// reported as transcription failures.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewError(CodeTranscriptionFailed, "", err)
}

// ExitCode maps any error to a process exit status. nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return AsError(err).Code.ExitCode()
}
