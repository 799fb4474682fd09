package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

const maxPathLength = 4096

// ValidateOutputPath checks a path before the sink creates it. The path
// must name a file with an extension, since the extension picks the
// encoder, and may not contain control characters.
func ValidateOutputPath(path string) error {
	switch {
	case path == "":
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	case len(path) > maxPathLength:
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	case strings.IndexFunc(path, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPath, "output path contains control characters")
	case strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)):
		return New(ErrCodeInvalidPath, "output path must name a file: %q", path)
	case filepath.Ext(path) == "":
		return New(ErrCodeInvalidPath, "output path needs an extension to select the format: %q", path)
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs with a host. Anything
// else, file URLs included, is INVALID_INPUT.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL has no host: %q", rawURL)
	}
	return nil
}

// IsURL reports whether s should be fetched rather than read from disk.
func IsURL(s string) bool {
	return ValidateURL(s) == nil
}
