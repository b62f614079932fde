package admin

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"

	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
)

func (h *Handler) serveDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	s := h.layout.New(r)
	s.Mount(r)

	data := DashboardTemplateData{
		ShellTemplateData: s.TemplateData("Admin Dashboard"),
	}

	if err := h.fillDashboardData(ctx, &data); err != nil {
		slog.ErrorContext(ctx, "could not load dashboard data", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buff bytes.Buffer
	if err := templates.ExecuteTemplate(&buff, "dashboard", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if _, err := buff.WriteTo(w); err != nil {
		slog.ErrorContext(ctx, "could not write response", log.Error(errors.WithStack(err)))
	}
}

func (h *Handler) fillDashboardData(ctx context.Context, data *DashboardTemplateData) error {
	userCount, err := h.store.CountUsers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	adminCount, err := h.store.CountAdmins(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	users, err := h.store.GetUsers(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	data.UserCount = int(userCount)
	data.AdminCount = int(adminCount)
	data.Users = make([]UserTemplateData, 0, len(users))

	for _, u := range users {
		data.Users = append(data.Users, NewUserTemplateData(u))
	}

	return nil
}
