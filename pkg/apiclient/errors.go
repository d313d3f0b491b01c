package apiclient

import "errors"

// ErrEmptyRenewalResponse means the renewal endpoint answered 2xx without an
// access token in the body.
var ErrEmptyRenewalResponse = errors.New("apiclient.empty_renewal_response")
