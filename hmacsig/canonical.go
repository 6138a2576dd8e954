package hmacsig

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// StringToSign builds the canonical representation of a request that both
// signer and verifier digest:
//
//	{timestamp}.{UPPERCASE method}.{path}.{canonical JSON of body or {}}
//
// The timestamp is milliseconds since the Unix epoch. A nil or null body is
// treated as an empty mapping. The string is created, digested, and
// discarded per request; it is never persisted.
func StringToSign(timestamp int64, method, path string, body *Message) (string, error) {
	bodyJSON, err := canonicalBody(body)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(strconv.FormatInt(timestamp, 10))
	b.WriteByte('.')
	b.WriteString(strings.ToUpper(method))
	b.WriteByte('.')
	b.WriteString(path)
	b.WriteByte('.')
	b.WriteString(bodyJSON)

	return b.String(), nil
}

// canonicalBody serializes a request body for signing. Absent and null
// bodies collapse to an empty mapping so that a request without a payload
// signs identically everywhere.
func canonicalBody(body *Message) (string, error) {
	if body == nil || body.Kind() == KindNull {
		return "{}", nil
	}

	data, err := body.CanonicalJSON()
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// messageBytes reduces a message to the bytes that get digested: text
// passes through as-is, every other variant is canonical JSON.
func messageBytes(msg *Message) ([]byte, error) {
	if msg.Kind() == KindText {
		return []byte(msg.text), nil
	}

	return msg.CanonicalJSON()
}

// pairBytes builds the canonical JSON of the {message, timestamp} pair
// covered by a timestamp token's digest. The token binds the digest to its
// timestamp; verification must reconstruct this exact pair.
func pairBytes(msg *Message, timestamp int64) ([]byte, error) {
	pair := Mapping(map[string]*Message{
		"message":   msg,
		"timestamp": Int(timestamp),
	})

	data, err := pair.CanonicalJSON()
	if err != nil {
		return nil, fmt.Errorf("hmacsig: canonicalize token pair: %w", err)
	}

	return data, nil
}

// RequestPath returns the canonical path of an HTTP request as used in
// its string-to-sign. The escaped form is used so that the verifier sees
// the same bytes the client signed.
func RequestPath(r *http.Request) string {
	if p := r.URL.EscapedPath(); p != "" {
		return p
	}

	return "/"
}
