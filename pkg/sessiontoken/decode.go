package sessiontoken

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// parser is stateless and safe for concurrent use.
var parser = jwt.NewParser()

// Decode extracts the session claims from an access token without verifying
// its signature. Verification is the issuing server's job; the client side
// only needs the embedded identity and expiry. Decode performs no I/O.
//
// A token that is not three dot-separated base64url segments, or whose
// payload is not parseable JSON, fails with ErrMalformedToken. A failed
// decode never yields partial claims.
func Decode(token string) (Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return Claims{}, errors.Join(ErrMalformedToken, err)
	}

	decoded := Claims{
		UserID:    stringClaim(claims, "user_id"),
		Username:  stringClaim(claims, "username"),
		Email:     stringClaim(claims, "email"),
		FirstName: stringClaim(claims, "first_name"),
		LastName:  stringClaim(claims, "last_name"),
		IsAdmin:   boolClaim(claims, "is_admin"),
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		decoded.ExpiresAt = exp.Unix()
	}

	return decoded, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func boolClaim(claims jwt.MapClaims, key string) bool {
	if v, ok := claims[key].(bool); ok {
		return v
	}
	return false
}
