package xapi

import "errors"

// Sentinel kinds for upstream errors.
var (
	ErrEmptySubject   = errors.New("empty subject screen name")
	ErrUnknownAccount = errors.New("unknown account")
	ErrUpstreamStatus = errors.New("upstream error status")
	ErrBatchTooLarge  = errors.New("avatar batch exceeds upstream cap")
)
