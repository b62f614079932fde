package embedded

import (
	"testing"
	"testing/fstest"

	"github.com/navanexis/site/pkg/assets"
	"github.com/pkg/errors"
)

func TestSource(t *testing.T) {
	fsys, err := assets.New(Type, nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := fstest.TestFS(fsys, "logo.svg", "site.css"); err != nil {
		t.Errorf("%+v", errors.WithStack(err))
	}
}
