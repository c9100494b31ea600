package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// graphIDRegex matches valid graph id strings: letters, digits, and the
// special characters ".", "_", and "-".
var graphIDRegex = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidateGraphID validates a graph id string.
// The id links a graph definition to the data annotations that populate it,
// so the accepted character set is intentionally narrow.
func ValidateGraphID(id string) error {
	if id == "" {
		return New(ErrCodeMissingAttribute, "graph id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeMalformedPayload, "graph id too long (max 128 characters)")
	}
	if !graphIDRegex.MatchString(id) {
		return New(ErrCodeMalformedPayload, "invalid graph id: %q", id)
	}
	return nil
}

// ValidateFilenameSuffix validates a graph's output filename suffix.
// The suffix is concatenated into an output path, so it must be a plain
// filename fragment without separators or traversal sequences.
func ValidateFilenameSuffix(suffix string) error {
	if suffix == "" {
		return New(ErrCodeMissingAttribute, "filename suffix cannot be empty")
	}

	if strings.ContainsAny(suffix, "/\\") {
		return New(ErrCodeMalformedPayload, "filename suffix cannot contain path separators")
	}
	if strings.Contains(suffix, "..") {
		return New(ErrCodeMalformedPayload, "filename suffix cannot contain path traversal sequences (..)")
	}

	for _, r := range suffix {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeMalformedPayload, "filename suffix contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPrefix validates the output path prefix for artifacts.
// Unlike the suffix it may contain separators, but not control characters.
func ValidateOutputPrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidConfig, "output path prefix cannot be empty")
	}
	for _, r := range prefix {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "output path prefix contains invalid characters")
		}
	}
	return nil
}
