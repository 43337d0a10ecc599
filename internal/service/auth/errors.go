// Package auth provides token issuance/verification and password hashing.
package auth

import "errors"

// ErrInvalidToken is returned for every token verification failure: bad
// signature, expiry, malformed structure. Callers deliberately cannot tell
// why a token was rejected, which keeps probing uninformative.
var ErrInvalidToken = errors.New("invalid or expired token")
