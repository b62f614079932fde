package setup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/navanexis/site/internal/authn/oauth2"
	"github.com/navanexis/site/internal/config"
	"github.com/pkg/errors"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()

	conf := config.NewDefaultConfig()

	if err := config.Interpolate(conf); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf.Store.Path = config.InterpolatedString(filepath.Join(t.TempDir(), "data.db"))
	conf.HTTP.Session.Secret = "super-secret-test-value"
	conf.HTTP.Session.Keys = nil
	conf.HTTP.Session.Store.Type = config.SessionStoreCookie
	conf.HTTP.RateLimit.Rate = 0.0001
	conf.HTTP.RateLimit.Burst = 3
	conf.Assets.Type = "embedded"
	conf.Auth.Admins = []config.User{
		{Email: "jane@example.com", Provider: "google"},
	}
	conf.Auth.AdminRules = &config.InterpolatedStringSlice{`domain(email) == "navanexis.com"`}

	return conf
}

func TestHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	conf := newTestConfig(t)

	handler, err := NewHandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	login := func(t *testing.T, user *oauth2.User) []*http.Cookie {
		res := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/providers/google/callback", nil)

		if err := oauth2Handler.StoreSessionUser(res, req, user); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		return res.Result().Cookies()
	}

	serve := func(method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		return res
	}

	jane := login(t, &oauth2.User{Subject: "1", Provider: "google", Name: "Jane Doe", Email: "jane@example.com"})
	john := login(t, &oauth2.User{Subject: "2", Provider: "google", Name: "John Smith", Email: "john@example.com"})
	bob := login(t, &oauth2.User{Subject: "3", Provider: "github", Nickname: "bob", Email: "bob@navanexis.com"})

	t.Run("anonymous home page", func(t *testing.T) {
		res := serve(http.MethodGet, "/", nil)

		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
		}

		body := res.Body.String()

		if !strings.Contains(body, "login-link") {
			t.Errorf("expected the login link")
		}

		if strings.Contains(body, "admin-link") {
			t.Errorf("expected no admin link")
		}

		if res.Header().Get("X-Request-Id") == "" {
			t.Errorf("expected a request id header")
		}

		if e, g := "DENY", res.Header().Get("X-Frame-Options"); e != g {
			t.Errorf("X-Frame-Options: expected '%v', got '%v'", e, g)
		}
	})

	t.Run("authenticated home page", func(t *testing.T) {
		type testCase struct {
			Name              string
			Cookies           []*http.Cookie
			ExpectedGreeting  string
			ExpectedAdminLink bool
		}

		testCases := []testCase{
			{Name: "listed admin", Cookies: jane, ExpectedGreeting: ">Jane<", ExpectedAdminLink: true},
			{Name: "member", Cookies: john, ExpectedGreeting: ">John<", ExpectedAdminLink: false},
			{Name: "admin by rule", Cookies: bob, ExpectedGreeting: ">bob<", ExpectedAdminLink: true},
		}

		for _, tc := range testCases {
			t.Run(tc.Name, func(t *testing.T) {
				res := serve(http.MethodGet, "/about", tc.Cookies)

				if e, g := http.StatusOK, res.Code; e != g {
					t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
				}

				body := res.Body.String()

				if !strings.Contains(body, tc.ExpectedGreeting) {
					t.Errorf("expected body to contain greeting '%s'", tc.ExpectedGreeting)
				}

				if e, g := tc.ExpectedAdminLink, strings.Contains(body, "admin-link"); e != g {
					t.Errorf("admin link: expected '%v', got '%v'", e, g)
				}
			})
		}
	})

	t.Run("admin dashboard", func(t *testing.T) {
		res := serve(http.MethodGet, "/admindashboard", nil)

		if e, g := http.StatusTemporaryRedirect, res.Code; e != g {
			t.Errorf("anonymous res.Code: expected '%v', got '%v'", e, g)
		}

		if e, g := "/auth/login", res.Header().Get("Location"); e != g {
			t.Errorf("anonymous Location: expected '%v', got '%v'", e, g)
		}

		res = serve(http.MethodGet, "/admindashboard", john)

		if e, g := http.StatusForbidden, res.Code; e != g {
			t.Errorf("member res.Code: expected '%v', got '%v'", e, g)
		}

		res = serve(http.MethodGet, "/admindashboard", jane)

		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("admin res.Code: expected '%v', got '%v'", e, g)
		}

		body := res.Body.String()

		for _, expected := range []string{"john@example.com", "bob@navanexis.com", `<p class="title admin-count">2</p>`} {
			if !strings.Contains(body, expected) {
				t.Errorf("expected dashboard to contain '%s'", expected)
			}
		}
	})

	t.Run("logout", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/logout", nil)
		for _, c := range jane {
			req.AddCookie(c)
		}

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if e, g := http.StatusSeeOther, res.Code; e != g {
			t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
		}

		if e, g := "/", res.Header().Get("Location"); e != g {
			t.Errorf("Location: expected '%v', got '%v'", e, g)
		}

		var expired bool
		for _, c := range res.Result().Cookies() {
			if c.Name == oauth2.NewOptions().SessionName && c.MaxAge < 0 {
				expired = true
			}
		}

		if !expired {
			t.Errorf("expected the session cookie to be expired")
		}
	})

	t.Run("assets", func(t *testing.T) {
		res := serve(http.MethodGet, "/assets/site.css", nil)

		if e, g := http.StatusOK, res.Code; e != g {
			t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
		}

		if !strings.Contains(res.Header().Get("Cache-Control"), "max-age=") {
			t.Errorf("expected a cache control header, got '%s'", res.Header().Get("Cache-Control"))
		}
	})

	t.Run("health check", func(t *testing.T) {
		res := serve(http.MethodGet, "/healthz", nil)

		if e, g := http.StatusNoContent, res.Code; e != g {
			t.Errorf("res.Code: expected '%v', got '%v'", e, g)
		}
	})

	t.Run("auth rate limit", func(t *testing.T) {
		codes := make([]int, 0)
		for range int(conf.HTTP.RateLimit.Burst) + 1 {
			req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
			req.RemoteAddr = "198.51.100.7:4242"

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			codes = append(codes, res.Code)
		}

		for i, code := range codes[:len(codes)-1] {
			if e, g := http.StatusOK, code; e != g {
				t.Errorf("request #%d: expected '%v', got '%v'", i, e, g)
			}
		}

		if e, g := http.StatusTooManyRequests, codes[len(codes)-1]; e != g {
			t.Errorf("last request: expected '%v', got '%v'", e, g)
		}
	})
}
