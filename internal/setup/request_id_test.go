package setup

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/xid"
	sloghttp "github.com/samber/slog-http"
)

func TestWithRequestID(t *testing.T) {
	upstreamID := xid.New().String()

	type testCase struct {
		Name        string
		Header      string
		ExpectReuse bool
	}

	testCases := []testCase{
		{Name: "Missing header", Header: ""},
		{Name: "Valid upstream id", Header: upstreamID, ExpectReuse: true},
		{Name: "Arbitrary value", Header: "hello\tworld"},
		{Name: "Oversized value", Header: strings.Repeat("a", 4096)},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			var seen string

			handler := withRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Header.Get(sloghttp.RequestIDHeaderKey)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.Header != "" {
				req.Header.Set(sloghttp.RequestIDHeaderKey, tc.Header)
			}

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			requestID := res.Header().Get(sloghttp.RequestIDHeaderKey)

			if _, err := xid.FromString(requestID); err != nil {
				t.Fatalf("expected a valid xid, got '%s'", requestID)
			}

			if e, g := requestID, seen; e != g {
				t.Errorf("seen: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.ExpectReuse, requestID == tc.Header; e != g {
				t.Errorf("reused upstream id: expected '%v', got '%v'", e, g)
			}
		})
	}
}
