package sessiontoken

import "errors"

var ErrMalformedToken = errors.New("sessiontoken.malformed_token")
