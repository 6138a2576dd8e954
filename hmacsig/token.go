package hmacsig

import (
	"fmt"
	"strconv"
	"strings"
)

// TimestampToken is a self-contained expiring token: a keyed digest bound
// to a message and the millisecond timestamp at which it was issued.
//
// Wire format: <hex digest>:<decimal milliseconds>:<JSON message>.
// The digest covers the canonical JSON of the {message, timestamp} pair,
// not the message alone.
type TimestampToken struct {
	// Digest is the lowercase hex digest over the {message, timestamp}
	// pair.
	Digest string

	// Timestamp is the issue time in milliseconds since the Unix epoch.
	Timestamp int64

	// Message is the signed payload.
	Message *Message

	// Token is the full colon-delimited wire form.
	Token string
}

// String returns the wire form of the token.
func (t *TimestampToken) String() string {
	return t.Token
}

// ParseToken parses the wire form of a timestamp token. Only the first two
// colons delimit fields; the message JSON may itself contain colons.
// It returns ErrMalformedToken when fewer than three fields are present,
// the timestamp is not an integer, or the message is not valid JSON.
func ParseToken(s string) (*TimestampToken, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected digest:timestamp:message", ErrMalformedToken)
	}

	timestamp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timestamp", ErrMalformedToken)
	}

	msg, err := FromJSON([]byte(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid message JSON", ErrMalformedToken)
	}

	return &TimestampToken{
		Digest:    parts[0],
		Timestamp: timestamp,
		Message:   msg,
		Token:     s,
	}, nil
}
