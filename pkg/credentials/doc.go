// Package credentials owns persistence of the access/refresh token pair.
//
// The Store interface abstracts where credentials live: CookieStore binds
// them to one HTTP request/response pair, MemoryStore keeps them in process
// memory for background callers and tests. Both report a missing entry as a
// boolean, never as an error.
//
// The Tokens type layers the token pair contract on top of a Store: the two
// tokens are independent entries with independent lifetimes, and Tokens is
// the only component allowed to hold the raw values.
package credentials
