package hmacsig

import (
	"crypto/sha256"
	"crypto/sha512"
	"hash"
)

// Algorithm identifies the keyed-digest algorithm used for signatures.
type Algorithm string

const (
	// AlgorithmHMACSHA256 is HMAC using SHA-256. This is the default and
	// produces a 32-byte digest (64 hex characters).
	AlgorithmHMACSHA256 Algorithm = "hmac-sha256"

	// AlgorithmHMACSHA512 is HMAC using SHA-512, producing a 64-byte
	// digest (128 hex characters).
	AlgorithmHMACSHA512 Algorithm = "hmac-sha512"
)

// String returns the string representation of the algorithm.
func (a Algorithm) String() string {
	return string(a)
}

// valid reports whether the algorithm is part of the supported HMAC family.
func (a Algorithm) valid() bool {
	switch a {
	case AlgorithmHMACSHA256, AlgorithmHMACSHA512:
		return true
	}

	return false
}

// hashFunc returns the underlying hash constructor.
func (a Algorithm) hashFunc() func() hash.Hash {
	switch a {
	case AlgorithmHMACSHA512:
		return sha512.New
	default:
		return sha256.New
	}
}

// digestSize returns the digest length in bytes.
func (a Algorithm) digestSize() int {
	switch a {
	case AlgorithmHMACSHA512:
		return sha512.Size
	default:
		return sha256.Size
	}
}
