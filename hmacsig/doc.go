// Package hmacsig issues and verifies HMAC request signatures for API
// authentication and tamper/replay detection.
//
// Both halves of the protocol share one keyed-digest engine and one
// canonicalization scheme: the signer reduces a request (or message) to a
// deterministic string-to-sign and digests it with a shared secret; the
// verifier reconstructs the same string from the inbound request, recomputes
// the digest, compares it in constant time, and bounds the age of the
// accompanying timestamp to reject replays.
//
// # Signing Requests
//
// Use a Signer to produce the two authentication headers for an outbound
// request:
//
//	signer, err := hmacsig.NewSigner(hmacsig.Config{Secret: secret})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers, err := signer.SignRequest(http.MethodGet, "/api/protected", nil)
//	// headers holds x-timestamp (decimal milliseconds) and
//	// x-signature (lowercase hex digest).
//
// # Verifying Requests
//
// Use a Verifier to gate inbound requests:
//
//	verifier, err := hmacsig.NewVerifier(hmacsig.Config{Secret: secret})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := verifier.VerifyRequest(r.Method, r.URL.Path, body, r.Header)
//	if result.Status != hmacsig.StatusAuthenticated {
//	    // result.Reason explains the rejection; the secret and the
//	    // expected digest are never part of it.
//	}
//
// # Server Middleware
//
// Middleware wraps an http.Handler and rejects unauthenticated requests
// before they reach it:
//
//	mw, err := hmacsig.Middleware(hmacsig.MiddlewareConfig{Verifier: verifier})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	protected := mw(apiHandler)
//
// # Client Transport
//
// NewTransport creates an http.RoundTripper that signs every outgoing
// request. Pass an *http.Transport to configure proxy, TLS, and timeout
// settings, or nil for sensible defaults:
//
//	client := &http.Client{
//	    Transport: hmacsig.NewTransport(nil, signer),
//	}
//
//	resp, err := client.Get("https://api.example.com/api/protected")
//
// # Timestamp Tokens
//
// Beyond HTTP requests, arbitrary messages can be signed into self-contained
// expiring tokens:
//
//	token, err := signer.SignWithTimestamp(hmacsig.Text("hello"))
//	// token.Token has the wire form <hex digest>:<decimal ms>:<JSON message>
//
//	result := verifier.VerifyToken(token.Token)
//	// result.Valid, result.Reason, result.Data, result.Age
package hmacsig
