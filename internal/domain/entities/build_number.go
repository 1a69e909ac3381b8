package entities

import (
	"fmt"
	"net/url"
	"strings"
)

// DeriveBuildNumber returns the last path segment of an artifact URL, as written (percent
// escapes are kept). Drop locations are named after the build that produced them, so the
// segment doubles as the build number.
func DeriveBuildNumber(artifactURL string) (string, error) {
	parsed, err := url.Parse(artifactURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrInvalidURL, artifactURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, artifactURL)
	}

	path := parsed.EscapedPath()
	segment := path[strings.LastIndex(path, "/")+1:]
	if segment == "" {
		return "", fmt.Errorf("%w: %q has no final path segment", ErrInvalidURL, artifactURL)
	}
	return segment, nil
}
