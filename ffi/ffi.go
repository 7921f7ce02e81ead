// Package ffi decodes the raw C argument and environment vectors OpenVPN
// passes to a plugin into owned Go values. Decoding happens exactly once
// at the plugin boundary; nothing downstream ever touches daemon memory
// again.
package ffi

import (
	"errors"
)

var (
	// ErrNullPointer is returned when a required vector is NULL.
	ErrNullPointer = errors.New("null pointer from daemon")
	// ErrInvalidUTF8 is returned when a daemon-supplied string is not
	// well-formed UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 sequence")
	// ErrMalformedEnv is returned when an environment entry cannot be
	// split into a KEY=value pair.
	ErrMalformedEnv = errors.New("malformed environment entry")
)
