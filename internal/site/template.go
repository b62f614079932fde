package site

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/navanexis/site/internal/ui"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

func parseTemplates(overrides fs.FS) (*template.Template, error) {
	tmpl, err := ui.Templates(nil, overrides, templateFs)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tmpl, nil
}
