package shell

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/navanexis/site/internal/ui"
	"github.com/pkg/errors"
)

type fakeIdentity struct {
	user         *User
	err          error
	terminateErr error

	loginCalls     int
	terminateCalls int
}

func (i *fakeIdentity) CurrentSession(r *http.Request) (*User, error) {
	return i.user, i.err
}

func (i *fakeIdentity) InitiateLogin(w http.ResponseWriter, r *http.Request) {
	i.loginCalls++
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (i *fakeIdentity) TerminateSession(w http.ResponseWriter, r *http.Request) error {
	i.terminateCalls++
	return i.terminateErr
}

var _ Identity = &fakeIdentity{}

var testNavigation = []ui.NavigationItem{
	{Name: "Home", Path: ""},
	{Name: "About", Path: "About", Icon: "fa-users"},
	{Name: "Services", Path: "Services", Icon: "fa-briefcase"},
	{Name: "Contact", Path: "Contact", Icon: "fa-phone"},
}

func newTestShell(identity Identity, target string) *Shell {
	layout := NewLayout(identity, WithNavigation(testNavigation...))
	return layout.New(httptest.NewRequest(http.MethodGet, target, nil))
}

func TestShellActiveItem(t *testing.T) {
	type testCase struct {
		Path   string
		Active string
	}

	testCases := []testCase{
		{Path: "/", Active: "Home"},
		{Path: "/about", Active: "About"},
		{Path: "/services", Active: "Services"},
		{Path: "/contact", Active: "Contact"},
		{Path: "/contact/", Active: ""},
		{Path: "/admindashboard", Active: ""},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			shell := newTestShell(&fakeIdentity{}, tc.Path)

			for _, item := range testNavigation {
				if e, g := item.Name == tc.Active, shell.IsActive(item); e != g {
					t.Errorf("IsActive(%s) on '%s': expected '%v', got '%v'", item.Name, tc.Path, e, g)
				}
			}

			for _, link := range shell.Links() {
				if e, g := link.Label == tc.Active, link.Active; e != g {
					t.Errorf("link '%s' on '%s': expected active '%v', got '%v'", link.Label, tc.Path, e, g)
				}
			}
		})
	}
}

func TestShellMount(t *testing.T) {
	type testCase struct {
		Name        string
		Identity    *fakeIdentity
		Tag         SessionTag
		FirstName   string
		Admin       bool
		Unreachable bool
	}

	testCases := []testCase{
		{
			Name:      "Member",
			Identity:  &fakeIdentity{user: &User{DisplayName: "Jane Doe", Role: RoleMember}},
			Tag:       SessionAuthenticated,
			FirstName: "Jane",
			Admin:     false,
		},
		{
			Name:      "Admin",
			Identity:  &fakeIdentity{user: &User{DisplayName: "Jane Doe", Role: RoleAdmin}},
			Tag:       SessionAuthenticated,
			FirstName: "Jane",
			Admin:     true,
		},
		{
			Name:      "BlankDisplayName",
			Identity:  &fakeIdentity{user: &User{DisplayName: "  ", Role: RoleMember}},
			Tag:       SessionAuthenticated,
			FirstName: "User",
		},
		{
			Name:     "NoSession",
			Identity: &fakeIdentity{err: errors.WithStack(ErrNoSession)},
			Tag:      SessionAnonymous,
		},
		{
			Name:     "NilUser",
			Identity: &fakeIdentity{},
			Tag:      SessionAnonymous,
		},
		{
			Name:        "LookupFailure",
			Identity:    &fakeIdentity{err: errors.New("store unavailable")},
			Tag:         SessionAnonymous,
			Unreachable: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			shell := NewLayout(tc.Identity, WithNavigation(testNavigation...)).New(req)

			if e, g := SessionLoading, shell.Session().Tag(); e != g {
				t.Fatalf("shell.Session().Tag() before mount: expected '%v', got '%v'", e, g)
			}

			shell.Mount(req)

			session := shell.Session()

			if e, g := tc.Tag, session.Tag(); e != g {
				t.Fatalf("session.Tag(): expected '%v', got '%v'", e, g)
			}

			if e, g := tc.Admin, shell.ShowAdminLink(); e != g {
				t.Errorf("shell.ShowAdminLink(): expected '%v', got '%v'", e, g)
			}

			if e, g := tc.Unreachable, session.Unreachable(); e != g {
				t.Errorf("session.Unreachable(): expected '%v', got '%v'", e, g)
			}

			data := shell.TemplateData("")

			if data.Account.Loading {
				t.Errorf("data.Account.Loading: expected false after mount")
			}

			if e, g := tc.Tag == SessionAuthenticated, data.Account.Authenticated; e != g {
				t.Errorf("data.Account.Authenticated: expected '%v', got '%v'", e, g)
			}

			if tc.Tag == SessionAuthenticated {
				if e, g := tc.FirstName, data.Account.FirstName; e != g {
					t.Errorf("data.Account.FirstName: expected '%v', got '%v'", e, g)
				}
			}
		})
	}
}

func TestShellToggleMobileMenu(t *testing.T) {
	for _, target := range []string{"/about", "/about?menu=open"} {
		shell := newTestShell(&fakeIdentity{}, target)

		initial := shell.MenuOpen()

		shell.ToggleMobileMenu()

		if e, g := !initial, shell.MenuOpen(); e != g {
			t.Errorf("%s: after one toggle expected '%v', got '%v'", target, e, g)
		}

		shell.ToggleMobileMenu()

		if e, g := initial, shell.MenuOpen(); e != g {
			t.Errorf("%s: after two toggles expected '%v', got '%v'", target, e, g)
		}
	}
}

func TestShellNavigate(t *testing.T) {
	for _, target := range []string{"/", "/?menu=open"} {
		for _, item := range testNavigation {
			shell := newTestShell(&fakeIdentity{}, target)

			url := shell.Navigate(item)

			if shell.MenuOpen() {
				t.Errorf("%s: menu expected to be closed after navigating to '%s'", target, item.Name)
			}

			if e, g := item.URL(), url; e != g {
				t.Errorf("Navigate(%s): expected '%v', got '%v'", item.Name, e, g)
			}
		}
	}
}

func TestShellLinksCloseMenu(t *testing.T) {
	shell := newTestShell(&fakeIdentity{}, "/about?menu=open")

	links := shell.Links()

	if !shell.MenuOpen() {
		t.Errorf("expected the menu to stay open while rendering links")
	}

	if e, g := len(testNavigation), len(links); e != g {
		t.Fatalf("len(links): expected '%v', got '%v'", e, g)
	}

	for idx, link := range links {
		if e, g := testNavigation[idx].URL(), link.URL; e != g {
			t.Errorf("links[%d].URL: expected '%v', got '%v'", idx, e, g)
		}
	}
}

func TestShellMenuToggleURL(t *testing.T) {
	type testCase struct {
		Target   string
		Expected string
	}

	testCases := []testCase{
		{Target: "/about", Expected: "/about?menu=open"},
		{Target: "/about?menu=open", Expected: "/about"},
		{Target: "/?lang=en", Expected: "/?lang=en&menu=open"},
		{Target: "/?lang=en&menu=open", Expected: "/?lang=en"},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			shell := newTestShell(&fakeIdentity{}, tc.Target)

			if e, g := tc.Expected, shell.MenuToggleURL(); e != g {
				t.Errorf("shell.MenuToggleURL(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestShellLogout(t *testing.T) {
	identities := map[string]*fakeIdentity{
		"Authenticated": {user: &User{DisplayName: "Jane Doe", Role: RoleAdmin}},
		"Anonymous":     {err: ErrNoSession},
		"Unreachable":   {err: errors.New("boom")},
	}

	for name, identity := range identities {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/logout", nil)
			shell := NewLayout(identity).New(req)
			shell.Mount(req)

			res := httptest.NewRecorder()

			if err := shell.Logout(res, req); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := 1, identity.terminateCalls; e != g {
				t.Errorf("identity.terminateCalls: expected '%v', got '%v'", e, g)
			}

			if e, g := SessionAnonymous, shell.Session().Tag(); e != g {
				t.Errorf("shell.Session().Tag(): expected '%v', got '%v'", e, g)
			}

			if e, g := http.StatusSeeOther, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			if e, g := "/", res.Header().Get("Location"); e != g {
				t.Errorf("Location: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestShellLogoutFailure(t *testing.T) {
	identity := &fakeIdentity{
		user:         &User{DisplayName: "Jane Doe"},
		terminateErr: errors.New("session backend down"),
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	shell := NewLayout(identity).New(req)
	shell.Mount(req)

	res := httptest.NewRecorder()

	if err := shell.Logout(res, req); err == nil {
		t.Fatalf("expected an error, got nil")
	}

	if e, g := SessionAuthenticated, shell.Session().Tag(); e != g {
		t.Errorf("shell.Session().Tag(): expected '%v', got '%v'", e, g)
	}

	if g := res.Header().Get("Location"); g != "" {
		t.Errorf("Location: expected no redirect, got '%v'", g)
	}
}

func TestShellLogin(t *testing.T) {
	identity := &fakeIdentity{}

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	shell := NewLayout(identity).New(req)
	shell.Mount(req)

	res := httptest.NewRecorder()
	shell.Login(res, req)

	if e, g := 1, identity.loginCalls; e != g {
		t.Errorf("identity.loginCalls: expected '%v', got '%v'", e, g)
	}

	if e, g := SessionAnonymous, shell.Session().Tag(); e != g {
		t.Errorf("shell.Session().Tag(): expected '%v', got '%v'", e, g)
	}
}

func TestTemplateDataQuickLinks(t *testing.T) {
	shell := newTestShell(&fakeIdentity{}, "/about")

	data := shell.TemplateData("About")

	for _, link := range data.Footer.QuickLinks {
		if link.Active {
			t.Errorf("quick link '%s': expected no active highlight", link.Label)
		}
	}

	if e, g := len(testNavigation), len(data.Footer.QuickLinks); e != g {
		t.Errorf("len(data.Footer.QuickLinks): expected '%v', got '%v'", e, g)
	}

	if !data.Account.Loading {
		t.Errorf("data.Account.Loading: expected true before mount")
	}
}
