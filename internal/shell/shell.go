package shell

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"

	"github.com/navanexis/site/internal/ui"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

const (
	MenuParam     = "menu"
	MenuOpenValue = "open"
)

// Layout holds what every shell of the site shares: navigation, brand,
// footer content and the identity service. It is immutable once built.
type Layout struct {
	identity   Identity
	navigation []ui.NavigationItem
	brand      ui.BrandTemplateData
	footer     ui.FooterTemplateData
	chatURL    string
	adminURL   string
	loginURL   string
	logoutURL  string
}

func NewLayout(identity Identity, funcs ...OptionFunc) *Layout {
	opts := NewOptions(funcs...)

	return &Layout{
		identity:   identity,
		navigation: slices.Clone(opts.Navigation),
		brand:      opts.Brand,
		footer:     opts.Footer,
		chatURL:    opts.ChatURL,
		adminURL:   opts.AdminURL,
		loginURL:   opts.LoginURL,
		logoutURL:  opts.LogoutURL,
	}
}

func (l *Layout) Navigation() []ui.NavigationItem {
	return slices.Clone(l.navigation)
}

// New returns a shell for the given request. The current path and the
// mobile menu flag are read from the request URL, the session stays in
// the loading state until Mount is called.
func (l *Layout) New(r *http.Request) *Shell {
	query := r.URL.Query()

	return &Shell{
		layout:      l,
		currentPath: r.URL.Path,
		query:       query,
		session:     Loading(),
		menuOpen:    query.Get(MenuParam) == MenuOpenValue,
	}
}

// Shell is the per-request state of the site frame.
type Shell struct {
	layout      *Layout
	currentPath string
	query       url.Values
	session     SessionState
	menuOpen    bool
}

// Mount performs the session lookup. Lookup failures of any kind leave the
// shell anonymous and are only logged.
func (s *Shell) Mount(r *http.Request) {
	ctx := r.Context()

	s.session = Loading()

	user, err := s.layout.identity.CurrentSession(r)
	switch {
	case err == nil && user != nil:
		s.session = Authenticated(user)

	case err == nil:
		s.session = Anonymous(ErrNoSession)

	case errors.Is(err, ErrNoSession):
		slog.DebugContext(ctx, "no session found", slog.String("path", s.currentPath))
		s.session = Anonymous(err)

	default:
		slog.WarnContext(ctx, "could not retrieve current session", log.Error(errors.WithStack(err)))
		s.session = Anonymous(err)
	}
}

func (s *Shell) Login(w http.ResponseWriter, r *http.Request) {
	s.layout.identity.InitiateLogin(w, r)
}

// Logout terminates the session then redirects to the home page.
// A failure to terminate the session is returned as is and the state
// is left untouched.
func (s *Shell) Logout(w http.ResponseWriter, r *http.Request) error {
	if err := s.layout.identity.TerminateSession(w, r); err != nil {
		return errors.WithStack(err)
	}

	s.session = Anonymous(nil)

	http.Redirect(w, r, ui.PageURL(""), http.StatusSeeOther)

	return nil
}

func (s *Shell) ToggleMobileMenu() {
	s.menuOpen = !s.menuOpen
}

// Navigate closes the mobile menu and returns the URL of the item.
func (s *Shell) Navigate(item ui.NavigationItem) string {
	s.menuOpen = false
	return item.URL()
}

func (s *Shell) IsActive(item ui.NavigationItem) bool {
	return s.currentPath == item.URL()
}

func (s *Shell) MenuOpen() bool {
	return s.menuOpen
}

func (s *Shell) Session() SessionState {
	return s.session
}

func (s *Shell) CurrentPath() string {
	return s.currentPath
}

func (s *Shell) FirstName() string {
	return s.session.User().FirstName()
}

func (s *Shell) ShowAdminLink() bool {
	return s.session.User().IsAdmin()
}

// MenuToggleURL returns the URL of the current page with the mobile menu
// in the opposite state. Other query parameters are kept.
func (s *Shell) MenuToggleURL() string {
	query := url.Values{}
	for key, values := range s.query {
		query[key] = slices.Clone(values)
	}

	if s.menuOpen {
		query.Del(MenuParam)
	} else {
		query.Set(MenuParam, MenuOpenValue)
	}

	u := url.URL{Path: s.currentPath, RawQuery: query.Encode()}

	return u.String()
}

// Links resolves the navigation items against the current request. Link
// targets are the result of navigating from a copy of the shell, so they
// never carry the mobile menu state.
func (s *Shell) Links() []ui.NavbarLink {
	links := make([]ui.NavbarLink, 0, len(s.layout.navigation))
	for _, item := range s.layout.navigation {
		target := *s
		links = append(links, ui.NavbarLink{
			Label:  item.Name,
			URL:    target.Navigate(item),
			Icon:   item.Icon,
			Active: s.IsActive(item),
		})
	}

	return links
}

func (s *Shell) TemplateData(pageTitle string) ui.ShellTemplateData {
	links := s.Links()

	quickLinks := make([]ui.NavbarLink, 0, len(links))
	for _, l := range links {
		l.Active = false
		quickLinks = append(quickLinks, l)
	}

	footer := s.layout.footer
	footer.QuickLinks = quickLinks

	return ui.ShellTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: pageTitle,
			SiteName:  s.layout.brand.Name,
		},
		NavbarTemplateData: ui.NavbarTemplateData{
			Links:         links,
			MenuOpen:      s.menuOpen,
			MenuToggleURL: s.MenuToggleURL(),
		},
		Brand: s.layout.brand,
		Account: ui.AccountTemplateData{
			Loading:       s.session.IsLoading(),
			Authenticated: s.session.IsAuthenticated(),
			FirstName:     s.FirstName(),
			ShowAdminLink: s.ShowAdminLink(),
			AdminURL:      s.layout.adminURL,
			LoginURL:      s.layout.loginURL,
			LogoutURL:     s.layout.logoutURL,
		},
		Footer:  footer,
		ChatURL: s.layout.chatURL,
	}
}
