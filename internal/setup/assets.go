package setup

import (
	"context"
	"net/http"

	"github.com/navanexis/site/internal/config"
	"github.com/navanexis/site/pkg/assets"
	"github.com/pkg/errors"

	_ "github.com/navanexis/site/pkg/assets/embedded"
	_ "github.com/navanexis/site/pkg/assets/local"
	_ "github.com/navanexis/site/pkg/assets/s3"
)

const assetsMaxAge = 3600

func NewAssetsHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	var options map[string]any
	if conf.Assets.Options != nil {
		options = conf.Assets.Options.Data
	}

	fsys, err := assets.New(assets.Type(conf.Assets.Type), options)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create assets source '%s'", conf.Assets.Type)
	}

	return assets.Handler(assetsPrefix, fsys, assetsMaxAge), nil
}

