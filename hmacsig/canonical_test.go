package hmacsig

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringToSign(t *testing.T) {
	tests := []struct {
		name      string
		timestamp int64
		method    string
		path      string
		body      *Message
		want      string
	}{
		{
			name:      "nil body becomes empty mapping",
			timestamp: 1700000000000,
			method:    "GET",
			path:      "/api/protected",
			want:      "1700000000000.GET./api/protected.{}",
		},
		{
			name:      "null body becomes empty mapping",
			timestamp: 1700000000000,
			method:    "GET",
			path:      "/api/protected",
			body:      Null(),
			want:      "1700000000000.GET./api/protected.{}",
		},
		{
			name:      "method uppercased",
			timestamp: 1,
			method:    "post",
			path:      "/x",
			want:      "1.POST./x.{}",
		},
		{
			name:      "body canonical JSON with sorted keys",
			timestamp: 42,
			method:    "PUT",
			path:      "/items/7",
			body: Mapping(map[string]*Message{
				"b": Int(2),
				"a": Text("one"),
			}),
			want: `42.PUT./items/7.{"a":"one","b":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringToSign(tt.timestamp, tt.method, tt.path, tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringToSignDeterminism(t *testing.T) {
	body, err := FromJSON([]byte(`{"z":1,"a":{"y":2,"b":3}}`))
	require.NoError(t, err)

	first, err := StringToSign(1700000000000, "POST", "/api", body)
	require.NoError(t, err)

	// Re-parse from differently ordered JSON; the canonical form must match.
	reordered, err := FromJSON([]byte(`{"a":{"b":3,"y":2},"z":1}`))
	require.NoError(t, err)

	second, err := StringToSign(1700000000000, "POST", "/api", reordered)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRequestPath(t *testing.T) {
	t.Run("plain path", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://example.com/api/items", nil)
		assert.Equal(t, "/api/items", RequestPath(r))
	})

	t.Run("escaped path preserved", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://example.com/api/a%20b", nil)
		assert.Equal(t, "/api/a%20b", RequestPath(r))
	})

	t.Run("empty path falls back to root", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://example.com", nil)
		r.URL.Path = ""
		assert.Equal(t, "/", RequestPath(r))
	})
}
