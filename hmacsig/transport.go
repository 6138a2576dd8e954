package hmacsig

import (
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that signs outgoing requests with
// timestamp and signature headers.
//
// Use NewTransport to create a Transport with a configured *http.Transport
// for proxy, TLS, and timeout settings.
type Transport struct {
	base   http.RoundTripper
	signer *Signer
}

// NewTransport creates a signing Transport that delegates to base after
// signing each request. When base is nil, a clone of http.DefaultTransport
// is used, giving an independent connection pool with default proxy, TLS,
// and timeout settings.
func NewTransport(base *http.Transport, signer *Signer) *Transport {
	var rt http.RoundTripper
	if base != nil {
		rt = base
	} else {
		rt = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Transport{
		base:   rt,
		signer: signer,
	}
}

// RoundTrip signs the request and then delegates to the base transport.
// The original request is cloned before signing to avoid mutation. When
// GetBody is available, the clone receives its own body copy so that
// canonicalization does not consume the caller's body.
//
// A JSON body is canonicalized into the string-to-sign; requests without
// a body sign an empty mapping.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.signer == nil {
		return nil, ErrNoSigner
	}

	clone := req.Clone(req.Context())

	var body *Message

	if req.Body != nil && req.Body != http.NoBody && req.GetBody != nil {
		rc, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}

		if len(data) > 0 {
			body, err = FromJSON(data)
			if err != nil {
				return nil, err
			}
		}

		fresh, err := req.GetBody()
		if err != nil {
			return nil, err
		}

		clone.Body = fresh
	}

	if err := t.signer.SignHTTP(clone, body); err != nil {
		return nil, err
	}

	return t.base.RoundTrip(clone)
}
