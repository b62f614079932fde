package local

import (
	"io/fs"
	"os"

	"github.com/navanexis/site/pkg/assets"
	"github.com/pkg/errors"
)

const Type assets.Type = "local"

func init() {
	assets.Register(Type, CreateSourceFromOptions)
}

type Options struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

func CreateSourceFromOptions(options any) (fs.FS, error) {
	opts := Options{}

	if err := assets.DecodeOptions(Type, options, &opts); err != nil {
		return nil, errors.WithStack(err)
	}

	if opts.Dir == "" {
		return nil, errors.Errorf("'%s' assets source: dir is required", Type)
	}

	info, err := os.Stat(opts.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat assets directory '%s'", opts.Dir)
	}

	if !info.IsDir() {
		return nil, errors.Errorf("assets path '%s' is not a directory", opts.Dir)
	}

	return os.DirFS(opts.Dir), nil
}
