package oauth2

import (
	"log/slog"
	"net/http"

	"github.com/navanexis/site/internal/ui"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

type loginPageTemplateData struct {
	ui.HeadTemplateData
	Providers []Provider
	Prefix    string
	HomeURL   string
}

func (h *Handler) getLoginPage(w http.ResponseWriter, r *http.Request) {
	data := loginPageTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Login",
			SiteName:  h.siteName,
		},
		Providers: h.providers,
		Prefix:    h.prefix,
		HomeURL:   ui.PageURL(""),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, "login", data); err != nil {
		slog.ErrorContext(r.Context(), "could not render login page", log.Error(errors.WithStack(err)))
	}
}
