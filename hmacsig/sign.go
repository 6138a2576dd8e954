package hmacsig

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Signer produces keyed digests over messages, timestamp tokens, and
// request headers. All operations are deterministic given the same inputs
// and timestamp; a Signer is safe for concurrent use.
type Signer struct {
	engine          *Engine
	timestampHeader string
	signatureHeader string
	nowFn           func() time.Time
}

// NewSigner creates a Signer from the given config. It returns ErrNoSecret
// when the secret is empty.
func NewSigner(cfg Config) (*Signer, error) {
	cfg = cfg.withDefaults()

	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Signer{
		engine:          engine,
		timestampHeader: cfg.TimestampHeader,
		signatureHeader: cfg.SignatureHeader,
		nowFn:           time.Now,
	}, nil
}

// SignMessage digests a message: text is digested as-is, every other
// variant through its canonical JSON.
func (s *Signer) SignMessage(msg *Message) (string, error) {
	data, err := messageBytes(msg)
	if err != nil {
		return "", err
	}

	return s.engine.Sum(data), nil
}

// SignWithTimestamp signs a message bound to the current time, producing a
// self-contained expiring token. The digest covers the canonical JSON of
// the {message, timestamp} pair.
func (s *Signer) SignWithTimestamp(msg *Message) (*TimestampToken, error) {
	timestamp := s.nowFn().UnixMilli()

	pair, err := pairBytes(msg, timestamp)
	if err != nil {
		return nil, err
	}

	msgJSON, err := msg.CanonicalJSON()
	if err != nil {
		return nil, err
	}

	digest := s.engine.Sum(pair)

	return &TimestampToken{
		Digest:    digest,
		Timestamp: timestamp,
		Message:   msg,
		Token:     digest + ":" + strconv.FormatInt(timestamp, 10) + ":" + string(msgJSON),
	}, nil
}

// SignRequest builds the authentication headers for an outbound request:
// the timestamp header holds the current time as decimal milliseconds and
// the signature header holds the hex digest of the string-to-sign.
func (s *Signer) SignRequest(method, path string, body *Message) (http.Header, error) {
	timestamp := s.nowFn().UnixMilli()

	sts, err := StringToSign(timestamp, method, path, body)
	if err != nil {
		return nil, fmt.Errorf("hmacsig: canonicalize request: %w", err)
	}

	header := make(http.Header, 2)
	header.Set(s.timestampHeader, strconv.FormatInt(timestamp, 10))
	header.Set(s.signatureHeader, s.engine.Sum([]byte(sts)))

	return header, nil
}

// SignHTTP signs an *http.Request in place, adding the timestamp and
// signature headers. The body message must match the request's payload
// byte-for-byte after canonicalization; pass nil for requests without one.
func (s *Signer) SignHTTP(r *http.Request, body *Message) error {
	header, err := s.SignRequest(r.Method, RequestPath(r), body)
	if err != nil {
		return err
	}

	for name, values := range header {
		r.Header.Set(name, strings.Join(values, ","))
	}

	return nil
}
