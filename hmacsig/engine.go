package hmacsig

import (
	"crypto/hmac"
	"encoding/hex"
)

// Engine computes and verifies keyed digests. It holds the secret and the
// algorithm and nothing else; every operation is a pure computation, so a
// single Engine is safe for concurrent use.
type Engine struct {
	alg    Algorithm
	secret []byte
}

// NewEngine creates an Engine from the given config. It returns ErrNoSecret
// when the secret is empty and ErrUnsupportedAlgorithm for algorithms
// outside the HMAC family. A secret shorter than MinSecretBytes is accepted
// with a warning through Config.Logger.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	if len(cfg.Secret) == 0 {
		return nil, ErrNoSecret
	}

	if !cfg.Algorithm.valid() {
		return nil, ErrUnsupportedAlgorithm
	}

	if len(cfg.Secret) < MinSecretBytes && cfg.Logger != nil {
		cfg.Logger.Warn("signing secret is shorter than the recommended minimum",
			"length", len(cfg.Secret),
			"recommended", MinSecretBytes)
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Engine{alg: cfg.Algorithm, secret: secret}, nil
}

// Algorithm returns the engine's digest algorithm.
func (e *Engine) Algorithm() Algorithm {
	return e.alg
}

// Sum returns the lowercase hex digest of data under the engine's secret.
// The same (secret, data) pair always yields the same digest.
func (e *Engine) Sum(data []byte) string {
	return hex.EncodeToString(e.sum(data))
}

// Verify recomputes the digest of data and compares it to candidate in
// constant time. A malformed candidate (invalid hex or wrong length)
// returns false rather than an error.
func (e *Engine) Verify(data []byte, candidate string) bool {
	decoded, err := hex.DecodeString(candidate)
	if err != nil || len(decoded) != e.alg.digestSize() {
		return false
	}

	return hmac.Equal(e.sum(data), decoded)
}

func (e *Engine) sum(data []byte) []byte {
	h := hmac.New(e.alg.hashFunc(), e.secret)
	h.Write(data)

	return h.Sum(nil)
}
