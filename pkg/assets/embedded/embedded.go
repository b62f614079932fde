package embedded

import (
	"embed"
	"io/fs"

	"github.com/navanexis/site/pkg/assets"
	"github.com/pkg/errors"
)

const Type assets.Type = "embedded"

//go:embed static/*
var static embed.FS

func init() {
	assets.Register(Type, CreateSourceFromOptions)
}

// CreateSourceFromOptions ignores its options, embedded assets are fixed at build time.
func CreateSourceFromOptions(options any) (fs.FS, error) {
	fsys, err := fs.Sub(static, "static")
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fsys, nil
}
