package routeguard

// Config holds routing guard policy. The threshold and the public path set
// are deployment policy, not structure, so they live here rather than in
// code.
type Config struct {
	// Threshold is the redirect count at which the loop breaker trips.
	Threshold int `env:"GUARD_REDIRECT_THRESHOLD" envDefault:"5"`

	LoginPath string `env:"GUARD_LOGIN_PATH" envDefault:"/login"`
	HomePath  string `env:"GUARD_HOME_PATH" envDefault:"/dashboard"`

	// PublicPaths are served without a token (exact match).
	PublicPaths []string `env:"GUARD_PUBLIC_PATHS" envDefault:"/login,/health-status"`
	// PublicPrefixes are served without a token (prefix match), e.g. static assets.
	PublicPrefixes []string `env:"GUARD_PUBLIC_PREFIXES" envDefault:"/static/"`

	CounterCookie string `env:"GUARD_COUNTER_COOKIE" envDefault:"redirect_count"`
	AccessCookie  string `env:"GUARD_ACCESS_COOKIE" envDefault:"access_token"`
	RefreshCookie string `env:"GUARD_REFRESH_COOKIE" envDefault:"refresh_token"`
}

// DefaultConfig returns default routing guard configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:      5,
		LoginPath:      "/login",
		HomePath:       "/dashboard",
		PublicPaths:    []string{"/login", "/health-status"},
		PublicPrefixes: []string{"/static/"},
		CounterCookie:  "redirect_count",
		AccessCookie:   "access_token",
		RefreshCookie:  "refresh_token",
	}
}
