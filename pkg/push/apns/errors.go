package apns

import "errors"

var (
	ErrMissingCredentials = errors.New("apns: auth key, key id and team id are required")
	ErrNilMessage         = errors.New("apns: nil push message")
)
