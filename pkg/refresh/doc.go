// Package refresh serializes access token renewal.
//
// The Coordinator enforces the single-writer invariant on the token pair
// during renewal: between the moment a renewal is initiated and the moment it
// resolves, no second renewal may start. Every caller that discovers an
// expired or rejected token during that window becomes a waiter on the same
// outcome.
//
// Outcomes are terminal per cycle. Success writes the new access token to the
// credential store and resolves all waiters with it; failure clears both
// tokens (logout) and rejects all waiters with the same error. The renewal
// call itself is never retried; a timed-out renewal is a failed renewal.
//
// Cancelling a waiting caller's context removes only that caller from the
// queue; the in-flight renewal and the remaining waiters are unaffected.
package refresh
