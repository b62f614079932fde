package setup

import (
	"log/slog"
	"net/http"

	"github.com/navanexis/site/pkg/log"
	"github.com/rs/xid"
	sloghttp "github.com/samber/slog-http"
)

// withRequestID tags each request with an identifier, reusing the one sent
// by an upstream proxy when it is a valid xid.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(sloghttp.RequestIDHeaderKey)
		if _, err := xid.FromString(requestID); err != nil {
			requestID = xid.New().String()
			r.Header.Set(sloghttp.RequestIDHeaderKey, requestID)
		}

		w.Header().Set(sloghttp.RequestIDHeaderKey, requestID)

		ctx := log.WithAttrs(r.Context(), slog.String("requestId", requestID))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
