package hmacsig

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MaxBodyBytes is the default cap on request bodies buffered for
// signature verification.
const MaxBodyBytes int64 = 1 << 20 // 1 MiB

// MiddlewareFunc wraps an http.Handler with additional behaviour.
type MiddlewareFunc func(next http.Handler) http.Handler

// AuditEvent describes one verification outcome, for observability.
type AuditEvent struct {
	// ID is a unique identifier for the event.
	ID string

	// Method and Path identify the request.
	Method string
	Path   string

	// RemoteAddr is the peer address as seen by the server.
	RemoteAddr string

	// Status and Reason describe the outcome.
	Status Status
	Reason string

	// Age is the request age at verification time.
	Age time.Duration
}

// MiddlewareConfig configures the verification middleware.
type MiddlewareConfig struct {
	// Verifier checks inbound requests. Required.
	Verifier *Verifier

	// MaxBodyBytes caps how much of the body is buffered for
	// verification. Defaults to MaxBodyBytes. Larger bodies are
	// rejected, failing closed.
	MaxBodyBytes int64

	// OnError is called when verification fails. When nil, a JSON 401
	// response carrying the status and reason is sent.
	OnError func(w http.ResponseWriter, r *http.Request, result AuthResult)

	// OnResult, when set, is called with an audit event for every
	// terminal state, accepted or rejected.
	OnResult func(r *http.Request, event AuditEvent)
}

// Middleware returns a MiddlewareFunc that verifies request signatures
// before invoking the next handler. The request body is buffered and
// restored, so downstream handlers read it as usual. On success the
// AuthResult is stored in the request context; see ResultFromContext.
//
// It returns ErrNoVerifier when MiddlewareConfig.Verifier is nil.
func Middleware(cfg MiddlewareConfig) (MiddlewareFunc, error) {
	if cfg.Verifier == nil {
		return nil, ErrNoVerifier
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = MaxBodyBytes
	}

	onError := cfg.OnError
	if onError == nil {
		onError = defaultOnError
	}

	verifier := cfg.Verifier
	onResult := cfg.OnResult

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, overflow, err := bufferBody(r, maxBody)

			var result AuthResult
			switch {
			case err != nil:
				result = AuthResult{
					Status: StatusInvalidSignature,
					Reason: "request body could not be read",
				}
			case overflow:
				result = AuthResult{
					Status: StatusInvalidSignature,
					Reason: "request body exceeds signature size limit",
				}
			default:
				result = verifier.VerifyHTTP(r, body)
			}

			if onResult != nil {
				onResult(r, AuditEvent{
					ID:         uuid.New().String(),
					Method:     r.Method,
					Path:       RequestPath(r),
					RemoteAddr: r.RemoteAddr,
					Status:     result.Status,
					Reason:     result.Reason,
					Age:        result.Age,
				})
			}

			if !result.Authenticated() {
				onError(w, r, result)
				return
			}

			next.ServeHTTP(w, r.WithContext(withResult(r.Context(), result)))
		})
	}, nil
}

// bufferBody reads the request body up to limit bytes and restores it so
// the next handler can read it again. overflow reports a body larger than
// the limit.
func bufferBody(r *http.Request, limit int64) (body []byte, overflow bool, err error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false, nil
	}

	body, err = io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, false, err
	}

	if int64(len(body)) > limit {
		return nil, true, nil
	}

	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, false, nil
}

// defaultOnError writes a 401 Unauthorized JSON response with the
// verification status and reason.
func defaultOnError(w http.ResponseWriter, _ *http.Request, result AuthResult) {
	payload, err := json.Marshal(map[string]string{
		"error":  result.Status.String(),
		"reason": result.Reason,
	})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write(payload)
}

type resultKey struct{}

func withResult(ctx context.Context, result AuthResult) context.Context {
	return context.WithValue(ctx, resultKey{}, result)
}

// ResultFromContext returns the AuthResult stored by Middleware for an
// authenticated request. ok is false when the request did not pass
// through the middleware.
func ResultFromContext(ctx context.Context) (AuthResult, bool) {
	result, ok := ctx.Value(resultKey{}).(AuthResult)

	return result, ok
}
