package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxIconNameLength = 128

// iconNameRegex matches icon names such as "aws/lambda" or "k8s.pod-v2".
var iconNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)*$`)

// ValidateIconName validates an icon reference before it is turned into a
// file path or URL.
//
// Icon names may contain a single level of slash-separated namespaces
// ("aws/lambda"), but never traversal sequences, absolute paths, control
// characters or backslashes.
func ValidateIconName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidIcon, "icon name cannot be empty")
	}
	if len(name) > maxIconNameLength {
		return New(ErrCodeInvalidIcon, "icon name too long (max %d characters)", maxIconNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidIcon, "icon name contains invalid control characters")
		}
	}
	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidIcon, "icon name contains invalid characters: %q", pattern)
		}
	}
	if !iconNameRegex.MatchString(name) {
		return New(ErrCodeInvalidIcon, "invalid icon name: %q", name)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	return nil
}
