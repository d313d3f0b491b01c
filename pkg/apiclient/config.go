package apiclient

import (
	"strings"
	"time"
)

// Config holds API client configuration.
type Config struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// TokenPath is the token issuance endpoint; never sent a bearer token.
	TokenPath string `env:"API_TOKEN_PATH" envDefault:"/api/token/"`
	// RefreshPath is the token renewal endpoint; never sent a bearer token.
	RefreshPath string `env:"API_REFRESH_PATH" envDefault:"/api/token/refresh/"`
}

// DefaultConfig returns default API client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "http://localhost:8000",
		Timeout:     30 * time.Second,
		TokenPath:   "/api/token/",
		RefreshPath: "/api/token/refresh/",
	}
}

func (c Config) renewalURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.RefreshPath
}
