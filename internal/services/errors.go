package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrToolUnavailable   = errors.New("tool unavailable")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrMalformedMetadata = errors.New("malformed metadata")
	ErrSubtitleNotFound  = errors.New("subtitle not found")
	ErrValidation        = errors.New("validation error")
	ErrConfiguration     = errors.New("configuration error")
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrExtractionFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind maps an error chain to a stable label used by the fetch journal and
// command output.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrToolUnavailable):
		return "tool_unavailable"
	case errors.Is(err, ErrExtractionFailed):
		return "extraction_failed"
	case errors.Is(err, ErrMalformedMetadata):
		return "malformed_metadata"
	case errors.Is(err, ErrSubtitleNotFound):
		return "subtitle_not_found"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrValidation):
		return "validation"
	default:
		return "other"
	}
}

// ExtractionError reports an external tool run that started but exited
// non-zero. The exit code and trimmed stderr are preserved for callers.
type ExtractionError struct {
	Binary   string
	ExitCode int
	Stderr   string
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Is tags the error as ErrExtractionFailed so errors.Is classification works
// without callers naming the concrete type.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
