// Package apiclient wraps every outbound API call with credential handling.
//
// The Transport type is an http.RoundTripper implementing the interception
// contract: attach the stored access token as a bearer credential before
// send (except on the token issuance and renewal endpoints), and on a 401
// obtain a fresh token through the Refresher and replay the request exactly
// once. A 401 on the replay is final. When no fresh token can be obtained the
// session is cleared and the original 401 is handed back unchanged.
//
// The Client type layers JSON conveniences on top: base URL joining, request
// encoding with replayable bodies, response decoding, and normalization of
// non-2xx responses into *APIError with a message extracted best-effort from
// the body.
//
// NewRenewer builds the refresh.RenewFunc used by the coordinator. It
// deliberately bypasses the interceptor.
package apiclient
