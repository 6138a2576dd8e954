package hmacsig

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultTimestampHeader carries the request timestamp as decimal
	// milliseconds since the Unix epoch.
	DefaultTimestampHeader = "x-timestamp"

	// DefaultSignatureHeader carries the lowercase hex digest.
	DefaultSignatureHeader = "x-signature"

	// DefaultMaxAge is the maximum accepted age of a signed request or
	// timestamp token.
	DefaultMaxAge = 5 * time.Minute

	// MinSecretBytes is the recommended minimum secret length. Shorter
	// secrets are accepted with a warning, not rejected.
	MinSecretBytes = 32
)

// SecretEnv is the environment variable consulted by LoadConfig to
// override the configured secret.
const SecretEnv = "SIGNING_SECRET"

// Config configures signing and verification. A Config is passed by value
// to NewSigner and NewVerifier; there is no process-wide instance.
type Config struct {
	// Secret is the shared signing key. Required. Never logged in full.
	Secret []byte

	// Algorithm selects the keyed-digest algorithm.
	// Defaults to AlgorithmHMACSHA256.
	Algorithm Algorithm

	// MaxAge bounds the accepted age of signed requests and timestamp
	// tokens. Defaults to DefaultMaxAge.
	MaxAge time.Duration

	// TimestampHeader overrides the header carrying the request
	// timestamp. Defaults to DefaultTimestampHeader.
	TimestampHeader string

	// SignatureHeader overrides the header carrying the digest.
	// Defaults to DefaultSignatureHeader.
	SignatureHeader string

	// Logger receives the short-secret warning. When nil, the warning
	// is dropped.
	Logger *slog.Logger
}

// withDefaults returns a copy of the config with zero fields replaced by
// their defaults.
func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmHMACSHA256
	}

	if c.MaxAge == 0 {
		c.MaxAge = DefaultMaxAge
	}

	if c.TimestampHeader == "" {
		c.TimestampHeader = DefaultTimestampHeader
	}

	if c.SignatureHeader == "" {
		c.SignatureHeader = DefaultSignatureHeader
	}

	return c
}

// fileConfig is the YAML representation of Config. The secret is a plain
// string and the age is expressed in milliseconds, matching the wire
// units used by the timestamp header.
type fileConfig struct {
	Secret          string `yaml:"secret"`
	Algorithm       string `yaml:"algorithm"`
	MaxAgeMS        int64  `yaml:"max_age_ms"`
	TimestampHeader string `yaml:"timestamp_header"`
	SignatureHeader string `yaml:"signature_header"`
}

// LoadConfig reads a YAML config file. The SIGNING_SECRET environment
// variable, when set and non-empty, overrides the file's secret so that
// key material can stay out of checked-in configuration.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hmacsig: read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("hmacsig: parse config: %w", err)
	}

	if env := os.Getenv(SecretEnv); env != "" {
		fc.Secret = env
	}

	cfg := Config{
		Secret:          []byte(fc.Secret),
		Algorithm:       Algorithm(fc.Algorithm),
		TimestampHeader: fc.TimestampHeader,
		SignatureHeader: fc.SignatureHeader,
	}

	if fc.MaxAgeMS > 0 {
		cfg.MaxAge = time.Duration(fc.MaxAgeMS) * time.Millisecond
	}

	return cfg, nil
}
