package setup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/navanexis/site/internal/config"
	"github.com/navanexis/site/internal/store"
	"github.com/pkg/errors"
)

var NewStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*store.Store, error) {
	path := string(conf.Store.Path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrapf(err, "could not create store directory '%s'", dir)
		}
	}

	store := store.NewStore(path)

	if err := store.HealthCheck(ctx); err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
})
