package challenge

import "errors"

var (
	// ErrMalformedToken is returned when a token cannot be decoded into a
	// valid challenge: bad base64, missing fields, non-numeric required
	// fields, or question indices outside the classic bank.
	ErrMalformedToken = errors.New("malformed challenge token")
	// ErrChallengeNotFound is returned when an AI token references a store
	// entry this client never had (expired or created on another device).
	ErrChallengeNotFound = errors.New("challenge payload not found")
	// ErrStoreUnavailable is returned when an AI challenge cannot be encoded
	// because the payload could not be persisted.
	ErrStoreUnavailable = errors.New("challenge store unavailable")
)
