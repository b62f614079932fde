package admin

import (
	"embed"
	"html/template"
	"time"

	"github.com/navanexis/site/internal/store"
	"github.com/navanexis/site/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// UserTemplateData contains information about a user
type UserTemplateData struct {
	ID          int64
	Provider    string
	Nickname    string
	Email       string
	IsAdmin     bool
	CreatedAt   time.Time
	ConnectedAt time.Time
}

// DashboardTemplateData contains the data needed to render the admin dashboard
type DashboardTemplateData struct {
	ui.ShellTemplateData
	UserCount  int
	AdminCount int
	Users      []UserTemplateData
}

func NewUserTemplateData(user *store.User) UserTemplateData {
	return UserTemplateData{
		ID:          user.ID,
		Provider:    user.Provider,
		Nickname:    user.Nickname,
		Email:       user.Email,
		IsAdmin:     user.IsAdmin(),
		CreatedAt:   user.CreatedAt,
		ConnectedAt: user.ConnectedAt,
	}
}
