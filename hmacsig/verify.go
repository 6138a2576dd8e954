package hmacsig

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Status is the terminal state of request verification.
type Status string

const (
	// StatusAuthenticated means the signature matched and the timestamp
	// was within the accepted window.
	StatusAuthenticated Status = "authenticated"

	// StatusNoHeaders means the timestamp or signature header was
	// missing. Verification fails closed.
	StatusNoHeaders Status = "no_headers"

	// StatusMalformedTimestamp means the timestamp header was present
	// but not an integer.
	StatusMalformedTimestamp Status = "malformed_timestamp"

	// StatusExpired means the request timestamp was outside the accepted
	// window in either direction.
	StatusExpired Status = "expired"

	// StatusInvalidSignature means the recomputed digest did not match
	// the signature header.
	StatusInvalidSignature Status = "invalid_signature"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Token verification reasons.
const (
	ReasonValidToken   = "Valid token"
	ReasonInvalidHMAC  = "Invalid HMAC"
	ReasonTokenExpired = "Token expired"
	ReasonInvalidToken = "Invalid token format"
)

// AuthResult is the outcome of request verification. It never carries the
// secret or the expected digest of a failed comparison.
type AuthResult struct {
	// Status is the terminal verification state.
	Status Status

	// Reason is a human-readable explanation of the status.
	Reason string

	// Age is the signed difference between verification time and the
	// request timestamp. Negative for timestamps in the future. Zero
	// when no timestamp could be parsed.
	Age time.Duration
}

// Authenticated reports whether verification succeeded.
func (r AuthResult) Authenticated() bool {
	return r.Status == StatusAuthenticated
}

// TokenResult is the outcome of timestamp-token verification.
type TokenResult struct {
	// Valid reports whether the token parsed, was fresh, and carried a
	// matching digest.
	Valid bool

	// Reason is one of the Reason constants.
	Reason string

	// Data is the token's message when Valid, nil otherwise.
	Data *Message

	// Age is the token age at verification time. Zero when the token
	// did not parse.
	Age time.Duration

	// MaxAge is the configured expiry window.
	MaxAge time.Duration
}

// Verifier checks message digests, timestamp tokens, and signed requests.
// Every operation is a pure computation; a Verifier is safe for concurrent
// use.
type Verifier struct {
	engine          *Engine
	maxAge          time.Duration
	timestampHeader string
	signatureHeader string
	nowFn           func() time.Time
}

// NewVerifier creates a Verifier from the given config. It returns
// ErrNoSecret when the secret is empty.
func NewVerifier(cfg Config) (*Verifier, error) {
	cfg = cfg.withDefaults()

	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		engine:          engine,
		maxAge:          cfg.MaxAge,
		timestampHeader: cfg.TimestampHeader,
		signatureHeader: cfg.SignatureHeader,
		nowFn:           time.Now,
	}, nil
}

// MaxAge returns the configured expiry window.
func (v *Verifier) MaxAge() time.Duration {
	return v.maxAge
}

// VerifyMessage checks candidate against the digest of msg, canonicalized
// exactly as Signer.SignMessage does. Malformed candidates return false.
func (v *Verifier) VerifyMessage(msg *Message, candidate string) bool {
	data, err := messageBytes(msg)
	if err != nil {
		return false
	}

	return v.engine.Verify(data, candidate)
}

// VerifyToken checks a timestamp token in wire form. Expiry is checked
// before the digest: an expired token is rejected even when its digest is
// valid. A token exactly at the expiry boundary is still fresh.
func (v *Verifier) VerifyToken(token string) TokenResult {
	result := TokenResult{MaxAge: v.maxAge}

	parsed, err := ParseToken(token)
	if err != nil {
		result.Reason = ReasonInvalidToken
		return result
	}

	result.Age = time.Duration(v.nowFn().UnixMilli()-parsed.Timestamp) * time.Millisecond
	if result.Age > v.maxAge {
		result.Reason = ReasonTokenExpired
		return result
	}

	pair, err := pairBytes(parsed.Message, parsed.Timestamp)
	if err != nil {
		result.Reason = ReasonInvalidToken
		return result
	}

	if !v.engine.Verify(pair, parsed.Digest) {
		result.Reason = ReasonInvalidHMAC
		return result
	}

	result.Valid = true
	result.Reason = ReasonValidToken
	result.Data = parsed.Message

	return result
}

// VerifyRequest checks the authentication headers of a request against its
// method, path, and body.
//
// The request timestamp is compared by absolute distance from the current
// time, so a request stamped too far in the future is rejected the same as
// a stale one; modest clock skew within the window passes. A request
// exactly at the boundary is still fresh.
func (v *Verifier) VerifyRequest(method, path string, body *Message, header http.Header) AuthResult {
	timestampValue := strings.TrimSpace(header.Get(v.timestampHeader))
	signatureValue := strings.TrimSpace(header.Get(v.signatureHeader))

	if timestampValue == "" || signatureValue == "" {
		return AuthResult{
			Status: StatusNoHeaders,
			Reason: "missing timestamp or signature header",
		}
	}

	timestamp, err := strconv.ParseInt(timestampValue, 10, 64)
	if err != nil {
		return AuthResult{
			Status: StatusMalformedTimestamp,
			Reason: "timestamp header is not an integer",
		}
	}

	age := time.Duration(v.nowFn().UnixMilli()-timestamp) * time.Millisecond

	skew := age
	if skew < 0 {
		skew = -skew
	}

	if skew > v.maxAge {
		return AuthResult{
			Status: StatusExpired,
			Reason: "request timestamp outside accepted window",
			Age:    age,
		}
	}

	sts, err := StringToSign(timestamp, method, path, body)
	if err != nil {
		return AuthResult{
			Status: StatusInvalidSignature,
			Reason: "request body could not be canonicalized",
			Age:    age,
		}
	}

	if !v.engine.Verify([]byte(sts), signatureValue) {
		return AuthResult{
			Status: StatusInvalidSignature,
			Reason: "signature does not match",
			Age:    age,
		}
	}

	return AuthResult{
		Status: StatusAuthenticated,
		Reason: "authenticated",
		Age:    age,
	}
}

// VerifyHTTP checks an inbound *http.Request whose body has already been
// read into bodyBytes. An empty body verifies as an absent one; a body
// that is not valid JSON can never match a signed canonical form and is
// rejected as an invalid signature rather than an error.
func (v *Verifier) VerifyHTTP(r *http.Request, bodyBytes []byte) AuthResult {
	var body *Message

	if len(bodyBytes) > 0 {
		parsed, err := FromJSON(bodyBytes)
		if err != nil {
			return AuthResult{
				Status: StatusInvalidSignature,
				Reason: "request body is not valid JSON",
			}
		}

		body = parsed
	}

	return v.VerifyRequest(r.Method, RequestPath(r), body, r.Header)
}
