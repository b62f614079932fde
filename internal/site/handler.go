package site

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/navanexis/site/internal/shell"
	"github.com/navanexis/site/internal/ui"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

const (
	genericPageTemplate  = "page"
	notFoundPageTemplate = "not-found"

	loginPath  = "/login"
	logoutPath = "/logout"
)

type page struct {
	Title    string
	Template string
}

type Handler struct {
	mux       *http.ServeMux
	layout    *shell.Layout
	templates *template.Template
	content   Content
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler registers a page for each navigation item of the layout. Page
// bodies come from the view named after the page URL ("home" for the root
// page), or from the generic page view when no such view exists. Views
// found in overrides take precedence over the embedded ones.
func NewHandler(layout *shell.Layout, content Content, overrides fs.FS) (*Handler, error) {
	if err := checkNavigation(layout.Navigation()); err != nil {
		return nil, errors.WithStack(err)
	}

	tmpl, err := parseTemplates(overrides)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	h := &Handler{
		mux:       http.NewServeMux(),
		layout:    layout,
		templates: tmpl,
		content:   content,
	}

	for _, item := range layout.Navigation() {
		url := item.URL()

		p := page{
			Title:    item.Name,
			Template: h.viewFor(url),
		}

		pattern := "GET " + url
		if url == ui.PageURL("") {
			pattern = "GET /{$}"
		}

		h.mux.Handle(pattern, h.servePage(p))
	}

	h.mux.HandleFunc("GET "+loginPath, h.handleLogin)
	h.mux.HandleFunc("POST "+logoutPath, h.handleLogout)
	h.mux.HandleFunc("GET /", h.handleNotFound)

	return h, nil
}

// checkNavigation rejects navigation items sharing a page URL with another
// item or with the login and logout endpoints.
func checkNavigation(items []ui.NavigationItem) error {
	seen := map[string]struct{}{
		loginPath:  {},
		logoutPath: {},
	}

	for _, item := range items {
		url := item.URL()
		if _, exists := seen[url]; exists {
			return errors.Errorf("duplicate navigation path '%s'", url)
		}

		seen[url] = struct{}{}
	}

	return nil
}

func (h *Handler) viewFor(url string) string {
	name := strings.TrimPrefix(url, "/")
	if name == "" {
		name = "home"
	}

	if h.templates.Lookup(name) == nil {
		return genericPageTemplate
	}

	return name
}

func (h *Handler) servePage(p page) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, http.StatusOK, p)
	})
}

func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, page{
		Title:    "Page not found",
		Template: notFoundPageTemplate,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.layout.New(r).Login(w, r)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.layout.New(r).Logout(w, r); err != nil {
		slog.ErrorContext(r.Context(), "could not terminate session", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

type PageTemplateData struct {
	ui.ShellTemplateData
	Title string
	Site  Content
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, p page) {
	ctx := r.Context()

	s := h.layout.New(r)
	s.Mount(r)

	data := PageTemplateData{
		ShellTemplateData: s.TemplateData(p.Title),
		Title:             p.Title,
		Site:              h.content,
	}

	var buff bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buff, p.Template, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)), slog.String("template", p.Template))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buff.Len()))
	w.WriteHeader(status)

	if _, err := buff.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "could not write response", log.Error(errors.WithStack(err)))
	}
}

var _ http.Handler = &Handler{}
