package pprof

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"strings"
)

type Handler struct {
	mux *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// NewHandler exposes the runtime profiles and the expvar variables below
// prefix, ie. "/debug/pprof".
func NewHandler(prefix string) *Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	mux := &http.ServeMux{}

	mux.HandleFunc("GET "+prefix+"/{$}", pprof.Index)
	mux.HandleFunc("GET "+prefix+"/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET "+prefix+"/profile", pprof.Profile)
	mux.HandleFunc("GET "+prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc("POST "+prefix+"/symbol", pprof.Symbol)
	mux.HandleFunc("GET "+prefix+"/trace", pprof.Trace)
	mux.Handle("GET "+prefix+"/vars", expvar.Handler())

	mux.HandleFunc("GET "+prefix+"/{name}", func(w http.ResponseWriter, r *http.Request) {
		pprof.Handler(r.PathValue("name")).ServeHTTP(w, r)
	})

	return &Handler{mux}
}

var _ http.Handler = &Handler{}
