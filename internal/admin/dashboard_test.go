package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/shell"
	"github.com/navanexis/site/internal/store"
	"github.com/pkg/errors"
)

type staticIdentity struct {
	user *shell.User
}

func (i *staticIdentity) CurrentSession(r *http.Request) (*shell.User, error) {
	if i.user == nil {
		return nil, shell.ErrNoSession
	}
	return i.user, nil
}

func (i *staticIdentity) InitiateLogin(w http.ResponseWriter, r *http.Request) {}

func (i *staticIdentity) TerminateSession(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	ctx := context.Background()

	st := store.NewStore(filepath.Join(t.TempDir(), "admin.db"))
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	users := []struct {
		Subject  string
		Nickname string
		Role     authz.Role
	}{
		{Subject: "1", Nickname: "jane", Role: authz.RoleAdmin},
		{Subject: "2", Nickname: "john", Role: authz.RoleMember},
		{Subject: "3", Nickname: "jim", Role: authz.RoleMember},
	}

	for _, u := range users {
		user, err := st.FindOrCreateUser(ctx, u.Subject, "google")
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		user.Nickname = u.Nickname
		user.Email = u.Nickname + "@example.com"
		user.Role = u.Role
		user.ConnectedAt = time.Now().Add(-time.Hour)

		if _, err := st.UpdateUser(ctx, user); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	layout := shell.NewLayout(&staticIdentity{
		user: &shell.User{DisplayName: "Jane Doe", Email: "jane@example.com", Role: shell.RoleAdmin},
	})

	return NewHandler("/admindashboard", layout, st)
}

func TestDashboard(t *testing.T) {
	h := newTestHandler(t)

	type testCase struct {
		Name         string
		Role         authz.Role
		ExpectedCode int
	}

	testCases := []testCase{
		{Name: "admin", Role: authz.RoleAdmin, ExpectedCode: http.StatusOK},
		{Name: "member", Role: authz.RoleMember, ExpectedCode: http.StatusForbidden},
		{Name: "no role", ExpectedCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admindashboard", nil)
			if tc.Role != "" {
				req = req.WithContext(authz.WithContextRole(req.Context(), tc.Role))
			}

			res := httptest.NewRecorder()
			h.ServeHTTP(res, req)

			if e, g := tc.ExpectedCode, res.Code; e != g {
				t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
			}

			if tc.ExpectedCode != http.StatusOK {
				return
			}

			body := res.Body.String()

			for _, expected := range []string{
				`<p class="title user-count">3</p>`,
				`<p class="title admin-count">1</p>`,
				"john@example.com",
				"1 hour ago",
				`id="desktop-nav"`,
			} {
				if !strings.Contains(body, expected) {
					t.Errorf("expected body to contain '%s'", expected)
				}
			}

			if e, g := 3, strings.Count(body, `<tr class="user">`); e != g {
				t.Errorf("user rows: expected '%v', got '%v'", e, g)
			}
		})
	}
}
