package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	limiter := New(1, 2)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	handler := limiter.Middleware(RemoteAddr)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		RemoteAddr     string
		ExpectedStatus int
	}

	testCases := []testCase{
		{RemoteAddr: "10.0.0.1:1234", ExpectedStatus: http.StatusNoContent},
		{RemoteAddr: "10.0.0.1:1235", ExpectedStatus: http.StatusNoContent},
		{RemoteAddr: "10.0.0.1:1236", ExpectedStatus: http.StatusTooManyRequests},
		{RemoteAddr: "10.0.0.2:1234", ExpectedStatus: http.StatusNoContent},
		{RemoteAddr: "invalid", ExpectedStatus: http.StatusInternalServerError},
	}

	for idx, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		req.RemoteAddr = tc.RemoteAddr

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if e, g := tc.ExpectedStatus, res.Code; e != g {
			t.Errorf("request #%d: expected status '%v', got '%v'", idx, e, g)
		}
	}

	now = now.Add(2 * time.Second)

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.1:1237"

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusNoContent, res.Code; e != g {
		t.Errorf("after refill: expected status '%v', got '%v'", e, g)
	}
}

func TestPrune(t *testing.T) {
	limiter := New(1, 1)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("10.0.0.1")

	now = now.Add(time.Hour)
	limiter.Allow("10.0.0.2")

	limiter.Prune(10 * time.Minute)

	if _, exists := limiter.clients.Load("10.0.0.1"); exists {
		t.Errorf("client '10.0.0.1': expected to be pruned")
	}

	if _, exists := limiter.clients.Load("10.0.0.2"); !exists {
		t.Errorf("client '10.0.0.2': expected to be kept")
	}
}
