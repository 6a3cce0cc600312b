package interceptors

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors/constants"
)

// HeaderTransport stamps X-Request-Id on every outgoing request (a fresh uuid
// unless the context already carries one) and X-Idempotency-Key when the
// context carries a key.
type HeaderTransport struct {
	Base http.RoundTripper
}

func NewHeaderTransport(base http.RoundTripper) *HeaderTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &HeaderTransport{Base: base}
}

func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)

	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	out.Header.Set(constants.HeaderXRequestId, requestID)

	if key := IdempotencyKey(ctx); key != "" {
		out.Header.Set(constants.HeaderXIdempotencyKey, key)
	}

	return t.Base.RoundTrip(out)
}
