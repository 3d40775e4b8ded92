package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID resolves caller input to a bare video identifier. It
// accepts either an id or the common watch/youtu.be/shorts/embed URL forms.
func ExtractVideoID(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrInvalidVideoID
	}
	if videoIDPattern.MatchString(s) {
		return s, nil
	}

	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, input)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var candidate string
	switch host {
	case "youtu.be":
		candidate = strings.TrimPrefix(u.Path, "/")
		if i := strings.Index(candidate, "/"); i >= 0 {
			candidate = candidate[:i]
		}
	case "youtube.com":
		switch {
		case u.Path == "/watch":
			candidate = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"):
			candidate = strings.TrimPrefix(u.Path, "/shorts/")
		case strings.HasPrefix(u.Path, "/embed/"):
			candidate = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/live/"):
			candidate = strings.TrimPrefix(u.Path, "/live/")
		}
		if i := strings.Index(candidate, "/"); i >= 0 {
			candidate = candidate[:i]
		}
	}

	if !videoIDPattern.MatchString(candidate) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVideoID, input)
	}
	return candidate, nil
}
