package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors"
	"github.com/jcmexdev/grocery-pos/internal/pkg/interceptors/constants"
)

// AttachRequestMetadata moves the request id and idempotency key into the
// request context. The caller's X-Request-Id wins over chi's generated id.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constants.HeaderXRequestId)
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		ctx := interceptors.WithRequestID(r.Context(), requestID)
		if key := r.Header.Get(constants.HeaderXIdempotencyKey); key != "" {
			ctx = interceptors.WithIdempotencyKey(ctx, key)
		}
		w.Header().Set(constants.HeaderXRequestId, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
