// Package auth exposes the session lifecycle to the application: login,
// logout, current-user lookup, token renewal, profile updates and password
// changes.
//
// The service holds no session state of its own. Tokens live in the
// credential store, identity is re-decoded from the access token on every
// lookup, and renewal is delegated to the refresh coordinator. CurrentUser
// and RefreshToken never fail loudly: every failure mode collapses to "no
// session" so callers can treat absence uniformly.
package auth
