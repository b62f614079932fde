package admin

import (
	"net/http"

	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/shell"
	"github.com/navanexis/site/internal/store"
)

type Handler struct {
	path   string
	layout *shell.Layout
	store  *store.Store
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(path string, layout *shell.Layout, store *store.Store) *Handler {
	handler := &Handler{
		path:   path,
		layout: layout,
		store:  store,
		mux:    &http.ServeMux{},
	}

	handler.mux.Handle("GET "+path, authz.Require(nil, authz.RoleAdmin)(http.HandlerFunc(handler.serveDashboard)))

	return handler
}

var _ http.Handler = &Handler{}
