// Package sessiontoken classifies access tokens on the client side.
//
// Decode reads the claims embedded in a JWT access token without contacting
// the server and without verifying the signature, and Claims.IsExpired
// classifies the result against a caller-supplied clock. Both are pure
// functions: no network access, no mutation, no hidden state.
//
// A structurally invalid token fails with ErrMalformedToken and yields no
// claims at all; callers treat that the same as "no session".
package sessiontoken
