package bodyguard

import "errors"

var (
	ErrBodyTooLarge  = errors.New("request body too large")
	ErrMalformedJSON = errors.New("malformed json body")
	ErrNotObject     = errors.New("json body must be an object")
)
