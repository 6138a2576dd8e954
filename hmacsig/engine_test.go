package hmacsig

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return bytes.Repeat([]byte("a"), 32)
}

func TestNewEngine(t *testing.T) {
	t.Run("empty secret returns error", func(t *testing.T) {
		_, err := NewEngine(Config{})
		assert.ErrorIs(t, err, ErrNoSecret)
	})

	t.Run("unsupported algorithm returns error", func(t *testing.T) {
		_, err := NewEngine(Config{Secret: testSecret(), Algorithm: "md5"})
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})

	t.Run("short secret warns but succeeds", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		engine, err := NewEngine(Config{Secret: []byte("short"), Logger: logger})
		require.NoError(t, err)
		assert.NotNil(t, engine)
		assert.Contains(t, buf.String(), "shorter than the recommended minimum")
	})

	t.Run("short secret without logger succeeds silently", func(t *testing.T) {
		engine, err := NewEngine(Config{Secret: []byte("short")})
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("engine copies the secret", func(t *testing.T) {
		secret := testSecret()

		engine, err := NewEngine(Config{Secret: secret})
		require.NoError(t, err)

		digest := engine.Sum([]byte("payload"))

		// Mutating the caller's slice must not affect the engine.
		secret[0] = 'z'

		assert.Equal(t, digest, engine.Sum([]byte("payload")))
	})
}

func TestEngineSum(t *testing.T) {
	engine, err := NewEngine(Config{Secret: testSecret()})
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		first := engine.Sum([]byte("payload"))
		second := engine.Sum([]byte("payload"))
		assert.Equal(t, first, second)
	})

	t.Run("lowercase hex of digest size", func(t *testing.T) {
		digest := engine.Sum([]byte("payload"))
		assert.Len(t, digest, 64)
		assert.Equal(t, strings.ToLower(digest), digest)
	})

	t.Run("different inputs differ", func(t *testing.T) {
		assert.NotEqual(t, engine.Sum([]byte("a")), engine.Sum([]byte("b")))
	})

	t.Run("different secrets differ", func(t *testing.T) {
		other, err := NewEngine(Config{Secret: bytes.Repeat([]byte("b"), 32)})
		require.NoError(t, err)

		assert.NotEqual(t, engine.Sum([]byte("payload")), other.Sum([]byte("payload")))
	})

	t.Run("sha512 digest size", func(t *testing.T) {
		wide, err := NewEngine(Config{Secret: testSecret(), Algorithm: AlgorithmHMACSHA512})
		require.NoError(t, err)

		assert.Len(t, wide.Sum([]byte("payload")), 128)
	})
}

func TestEngineVerify(t *testing.T) {
	engine, err := NewEngine(Config{Secret: testSecret()})
	require.NoError(t, err)

	t.Run("valid digest verifies", func(t *testing.T) {
		digest := engine.Sum([]byte("payload"))
		assert.True(t, engine.Verify([]byte("payload"), digest))
	})

	t.Run("digest of other data fails", func(t *testing.T) {
		digest := engine.Sum([]byte("other"))
		assert.False(t, engine.Verify([]byte("payload"), digest))
	})

	t.Run("malformed candidates return false", func(t *testing.T) {
		digest := engine.Sum([]byte("payload"))

		tests := []struct {
			name      string
			candidate string
		}{
			{name: "empty", candidate: ""},
			{name: "not hex", candidate: strings.Repeat("zz", 32)},
			{name: "too short", candidate: digest[:32]},
			{name: "too long", candidate: digest + "00"},
			{name: "odd length", candidate: digest[:63]},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.False(t, engine.Verify([]byte("payload"), tt.candidate))
			})
		}
	})

	t.Run("every single character flip fails", func(t *testing.T) {
		digest := engine.Sum([]byte("payload"))

		for i := range digest {
			flipped := []byte(digest)
			if flipped[i] == '0' {
				flipped[i] = '1'
			} else {
				flipped[i] = '0'
			}

			assert.False(t, engine.Verify([]byte("payload"), string(flipped)))
		}
	})
}
