// Package routeguard gates page navigation on credential presence.
//
// The Guard's middleware classifies each requested path as public or
// protected and decides between serving it, redirecting to the login page
// (carrying the original path in a "from" query parameter), or redirecting
// an already-authenticated visitor from a public page to the home page.
//
// A dedicated redirect_count cookie counts consecutive redirects. When it
// reaches the configured threshold the guard stops classifying, deletes the
// access token, refresh token and counter cookies, and redirects to the
// login page with no "from" parameter. This breaks any redirect loop caused
// by inconsistent or adversarial cookie state.
//
// The guard is the only component that reads or writes the counter cookie.
package routeguard
