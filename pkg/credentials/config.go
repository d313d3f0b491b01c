package credentials

import "time"

// Config holds credential storage configuration.
type Config struct {
	// AccessCookie is the name of the access token entry (default: "access_token")
	AccessCookie string `env:"AUTH_ACCESS_COOKIE" envDefault:"access_token"`
	// RefreshCookie is the name of the refresh token entry (default: "refresh_token")
	RefreshCookie string `env:"AUTH_REFRESH_COOKIE" envDefault:"refresh_token"`

	AccessTTL  time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"30m"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"720h"`
}

// DefaultConfig returns default credential storage configuration.
func DefaultConfig() Config {
	return Config{
		AccessCookie:  "access_token",
		RefreshCookie: "refresh_token",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    720 * time.Hour,
	}
}
