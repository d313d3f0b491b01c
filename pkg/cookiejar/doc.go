// Package cookiejar provides a typed HTTP cookie accessor with explicit
// attribute handling.
//
// The Jar type is the entry point. It is initialised with a set of default
// cookie Options (path, domain, expiry, Secure, HttpOnly, SameSite) and
// exposes three operations:
//
//   - Set() – write a cookie, optionally overriding defaults per call
//   - Get() – read a request cookie; absence is a boolean, not an error
//   - Delete() – expire a cookie on the response
//
// # Deletion representation
//
// Delete writes the cookie with an empty value and Expires set to the Unix
// epoch ("Thu, 01 Jan 1970 00:00:00 GMT") without a Max-Age attribute. This
// exact form is part of the contract: deployed clients inspect Set-Cookie
// headers and rely on it, so it must not change.
//
// # Configuration
//
// The Config struct allows the jar to be constructed from environment
// variables via github.com/caarlos0/env. Only non-zero fields are applied.
//
//	cfg := cookiejar.DefaultConfig()
//	_ = env.Parse(&cfg)
//	jar := cookiejar.NewFromConfig(cfg)
package cookiejar
