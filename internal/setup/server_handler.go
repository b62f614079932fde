package setup

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/navanexis/site/internal/admin"
	"github.com/navanexis/site/internal/authn"
	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/config"
	"github.com/navanexis/site/internal/pprof"
	"github.com/navanexis/site/internal/ratelimit"
	"github.com/navanexis/site/internal/site"
	"github.com/navanexis/site/pkg/log"
	"github.com/pkg/errors"
	"github.com/unrolled/secure"
	"golang.org/x/time/rate"

	sloghttp "github.com/samber/slog-http"
)

const (
	adminPath    = "/admindashboard"
	assetsPrefix = "/assets/"
	pprofPrefix  = "/debug/pprof/"

	rateLimitPruneInterval = time.Minute
	rateLimitIdleTimeout   = 10 * time.Minute
)

func NewHandlerFromConfig(ctx context.Context, conf *config.Config) (http.Handler, error) {
	mux := &http.ServeMux{}

	assetsHandler, err := NewAssetsHandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle(assetsPrefix, assetsHandler)

	oauth2Handler, err := NewOAuth2HandlerFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	rateLimiter := ratelimit.New(rate.Limit(conf.HTTP.RateLimit.Rate), int(conf.HTTP.RateLimit.Burst))
	go pruneRateLimiter(ctx, rateLimiter)

	mux.Handle("/auth/", rateLimiter.Middleware(ratelimit.RemoteAddr)(oauth2Handler))

	store, err := NewStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	policy, err := NewPolicyFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	identity := NewIdentity(oauth2Handler, store, policy)
	layout := NewLayoutFromConfig(ctx, conf, identity)

	uiAuth := authn.Chain(
		authn.WithAuthenticators(
			oauth2Handler.Authenticator(true),
		),
		authn.WithOnAuthenticated(identity.OnAuthenticated),
	)

	mux.Handle(adminPath, uiAuth(admin.NewHandler(adminPath, layout, store)))

	if conf.HTTP.Debug.Profiling {
		slog.WarnContext(ctx, "profiling endpoints enabled", slog.String("prefix", pprofPrefix))
		mux.Handle(pprofPrefix, uiAuth(authz.Require(nil, authz.RoleAdmin)(pprof.NewHandler(pprofPrefix))))
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := store.HealthCheck(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})

	var templateOverrides fs.FS
	if dir := string(conf.Site.TemplatesDir); dir != "" {
		templateOverrides = os.DirFS(dir)
	}

	siteHandler, err := site.NewHandler(layout, newSiteContentFromConfig(conf), templateOverrides)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	mux.Handle("/", siteHandler)

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		IsDevelopment:      bool(conf.HTTP.Secure.Development),
	})

	var handler http.Handler = mux
	handler = secureMiddleware.Handler(handler)
	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(slog.Default())(handler)
	handler = withRequestID(handler)

	return handler, nil
}

func pruneRateLimiter(ctx context.Context, limiter *ratelimit.RateLimiter) {
	ticker := time.NewTicker(rateLimitPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Prune(rateLimitIdleTimeout)
		}
	}
}
