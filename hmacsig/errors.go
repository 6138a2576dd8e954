package hmacsig

import "errors"

// Configuration errors.
var (
	// ErrNoSecret is returned when a Config carries an empty secret.
	ErrNoSecret = errors.New("hmacsig: secret must not be empty")

	// ErrUnsupportedAlgorithm is returned when Config names an algorithm
	// outside the supported HMAC family.
	ErrUnsupportedAlgorithm = errors.New("hmacsig: unsupported algorithm")
)

// Token errors.
var (
	// ErrMalformedToken is returned when a timestamp token cannot be
	// parsed: fewer than three colon-delimited fields, a non-integer
	// timestamp, or a message field that is not valid JSON.
	ErrMalformedToken = errors.New("hmacsig: malformed token")
)

// Message errors.
var (
	// ErrNotSerializable is returned when a value cannot be represented
	// as a Message (e.g. a channel or function passed to FromValue).
	ErrNotSerializable = errors.New("hmacsig: message not serializable")
)

// Middleware and transport errors.
var (
	// ErrNoVerifier is returned when MiddlewareConfig has no Verifier.
	ErrNoVerifier = errors.New("hmacsig: verifier must not be nil")

	// ErrNoSigner is returned when a signing Transport is created
	// without a Signer.
	ErrNoSigner = errors.New("hmacsig: signer must not be nil")
)
