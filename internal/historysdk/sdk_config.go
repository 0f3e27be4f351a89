package historysdk

import (
	"net/url"
	"strings"
)

const (
	DefaultBaseURL = "http://127.0.0.1:8080"
)

// Config is the configuration for the Client
type Config struct {
	BaseURL   string // BaseURL is required
	UserAgent string // UserAgent is optional, DefaultUserAgent when empty
	Debug     bool   // Debug dumps every request and response to stderr
}

func (c *Config) Validate() error {
	baseURL := NormalizeBaseURL(c.BaseURL)
	if baseURL == "" {
		return ErrNoServerURL
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidServerURL
	}

	return nil
}

// NormalizeBaseURL strips any query, fragment and trailing slashes from raw.
// The path is kept so that services mounted under a prefix (an ingress path) keep working.
// An empty or blank input yields an empty string.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimRight(raw, "/")
}
