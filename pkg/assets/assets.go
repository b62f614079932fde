package assets

import (
	"io/fs"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

var ErrNotRegistered = errors.New("not registered")

type Type string

type Factory func(options any) (fs.FS, error)

var (
	registryMutex sync.RWMutex
	registry      = map[Type]Factory{}
)

// Register makes an assets source available under the given type.
// It is expected to be called from the init() function of the source package.
func Register(sourceType Type, factory Factory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	registry[sourceType] = factory
}

func Registered() []Type {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	types := make([]Type, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}

	slices.Sort(types)

	return types
}

func New(sourceType Type, options any) (fs.FS, error) {
	registryMutex.RLock()
	factory, exists := registry[sourceType]
	registryMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrNotRegistered, "no assets source of type '%s'", sourceType)
	}

	fsys, err := factory(options)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fsys, nil
}

// Handler serves the files of fsys below prefix.
func Handler(prefix string, fsys fs.FS, maxAge int) http.Handler {
	fileServer := http.StripPrefix(prefix, http.FileServerFS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if maxAge > 0 {
			w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
		}

		fileServer.ServeHTTP(w, r)
	})
}
