package refresh

import "errors"

var (
	// ErrNoRefreshToken means renewal was not attempted because no refresh
	// token is stored.
	ErrNoRefreshToken = errors.New("refresh.no_refresh_token")
	// ErrRenewalFailed means the server rejected the renewal or the call
	// failed; the session has been cleared.
	ErrRenewalFailed = errors.New("refresh.renewal_failed")
)
