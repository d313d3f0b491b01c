package sessiontoken

import "time"

// Claims is the read-only view of the identity embedded in an access token.
// It is derived on demand from the token string and never persisted.
type Claims struct {
	UserID    string
	Username  string
	Email     string
	FirstName string
	LastName  string
	IsAdmin   bool
	ExpiresAt int64 // Unix seconds
}

// IsExpired reports whether the claims have expired at the given instant.
// A token expiring exactly now counts as expired (fail-closed), and a token
// without an exp claim is always expired.
func (c Claims) IsExpired(now time.Time) bool {
	return c.ExpiresAt <= now.Unix()
}
