package classifier

import "errors"

var (
	// ErrUnavailable covers transport failures and 5xx responses.
	ErrUnavailable = errors.New("classifier unavailable")
	// ErrInvalidResponse covers undecodable bodies, empty labels, and 4xx responses.
	ErrInvalidResponse = errors.New("invalid classifier response")
)
