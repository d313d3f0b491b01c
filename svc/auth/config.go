package auth

// Config holds the session service endpoints.
type Config struct {
	TokenPath    string `env:"AUTH_TOKEN_PATH" envDefault:"/api/token/"`
	ProfilePath  string `env:"AUTH_PROFILE_PATH" envDefault:"/api/users/me/"`
	PasswordPath string `env:"AUTH_PASSWORD_PATH" envDefault:"/api/users/change-password/"`
}

// DefaultConfig returns default session service configuration.
func DefaultConfig() Config {
	return Config{
		TokenPath:    "/api/token/",
		ProfilePath:  "/api/users/me/",
		PasswordPath: "/api/users/change-password/",
	}
}
