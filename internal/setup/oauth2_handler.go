package setup

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/gitea"
	"github.com/markbates/goth/providers/github"
	"github.com/markbates/goth/providers/google"
	"github.com/markbates/goth/providers/openidConnect"
	"github.com/navanexis/site/internal/authn/oauth2"
	"github.com/navanexis/site/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"
)

var NewOAuth2HandlerFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*oauth2.Handler, error) {
	sessionStore, err := NewSessionStoreFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	gothProviders, providers, err := newOAuth2Providers(conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(providers) == 0 {
		slog.WarnContext(ctx, "no oauth2 provider configured, login is disabled")
	}

	goth.UseProviders(gothProviders...)
	gothic.Store = sessionStore

	opts := []oauth2.OptionFunc{
		oauth2.WithProviders(providers...),
		oauth2.WithPrefix("/auth"),
		oauth2.WithSiteName(string(conf.Site.Name)),
	}

	auth := oauth2.NewHandler(
		sessionStore,
		opts...,
	)

	return auth, nil
})

func NewSessionStoreFromConfig(ctx context.Context, conf *config.Config) (sessions.Store, error) {
	keyPairs, err := getSessionKeyPairs(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var maxAge int
	if conf.HTTP.Session.Cookie.MaxAge != nil {
		maxAge = int(time.Duration(*conf.HTTP.Session.Cookie.MaxAge) / time.Second)
	}

	var (
		store   sessions.Store
		options *sessions.Options
	)

	switch storeType := string(conf.HTTP.Session.Store.Type); storeType {
	case config.SessionStoreCookie, "":
		cookieStore := sessions.NewCookieStore(keyPairs...)
		cookieStore.MaxAge(maxAge)
		store, options = cookieStore, cookieStore.Options

	case config.SessionStoreFilesystem:
		dir := string(conf.HTTP.Session.Store.Dir)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrapf(err, "could not create sessions directory '%s'", dir)
		}

		filesystemStore := sessions.NewFilesystemStore(dir, keyPairs...)
		filesystemStore.MaxAge(maxAge)
		store, options = filesystemStore, filesystemStore.Options

	default:
		return nil, errors.Errorf("unknown session store type '%s'", storeType)
	}

	options.Path = string(conf.HTTP.Session.Cookie.Path)
	options.HttpOnly = bool(conf.HTTP.Session.Cookie.HTTPOnly)
	options.Secure = bool(conf.HTTP.Session.Cookie.Secure)
	options.SameSite = http.SameSiteLaxMode

	return store, nil
}

// getSessionKeyPairs returns the explicitly configured keys, or a hash key
// and a block key derived from the session secret. Without both, a random
// key is generated and sessions do not survive a restart.
func getSessionKeyPairs(ctx context.Context, conf *config.Config) ([][]byte, error) {
	keyPairs := make([][]byte, 0)

	if len(conf.HTTP.Session.Keys) > 0 {
		for _, k := range conf.HTTP.Session.Keys {
			keyPairs = append(keyPairs, []byte(k))
		}

		return keyPairs, nil
	}

	if secret := string(conf.HTTP.Session.Secret); secret != "" {
		hashKey, blockKey, err := deriveSessionKeys([]byte(secret))
		if err != nil {
			return nil, errors.Wrap(err, "could not derive session keys")
		}

		return append(keyPairs, hashKey, blockKey), nil
	}

	slog.WarnContext(ctx, "no session secret configured, generating a random session key")

	key, err := getRandomBytes(32)
	if err != nil {
		return nil, errors.Wrap(err, "could not generate cookie signing key")
	}

	return append(keyPairs, key), nil
}

func deriveSessionKeys(secret []byte) ([]byte, []byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte("navanexis session keys"))

	hashKey := make([]byte, 64)
	if _, err := io.ReadFull(reader, hashKey); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	blockKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, blockKey); err != nil {
		return nil, nil, errors.WithStack(err)
	}

	return hashKey, blockKey, nil
}

func newOAuth2Providers(conf *config.Config) ([]goth.Provider, []oauth2.Provider, error) {
	gothProviders := make([]goth.Provider, 0)
	providers := make([]oauth2.Provider, 0)

	callbackURL := func(provider string) string {
		return fmt.Sprintf("%s/auth/providers/%s/callback", conf.HTTP.BaseURL, provider)
	}

	if conf.Auth.Providers.Google.Key != "" && conf.Auth.Providers.Google.Secret != "" {
		googleProvider := google.New(
			string(conf.Auth.Providers.Google.Key),
			string(conf.Auth.Providers.Google.Secret),
			callbackURL("google"),
			conf.Auth.Providers.Google.Scopes...,
		)

		gothProviders = append(gothProviders, googleProvider)

		providers = append(providers, oauth2.Provider{
			ID:    googleProvider.Name(),
			Label: "Google",
			Icon:  "fa-brands fa-google",
		})
	}

	if conf.Auth.Providers.Github.Key != "" && conf.Auth.Providers.Github.Secret != "" {
		githubProvider := github.New(
			string(conf.Auth.Providers.Github.Key),
			string(conf.Auth.Providers.Github.Secret),
			callbackURL("github"),
			conf.Auth.Providers.Github.Scopes...,
		)

		gothProviders = append(gothProviders, githubProvider)

		providers = append(providers, oauth2.Provider{
			ID:    githubProvider.Name(),
			Label: "Github",
			Icon:  "fa-brands fa-github",
		})
	}

	if conf.Auth.Providers.Gitea.Key != "" && conf.Auth.Providers.Gitea.Secret != "" {
		giteaProvider := gitea.NewCustomisedURL(
			string(conf.Auth.Providers.Gitea.Key),
			string(conf.Auth.Providers.Gitea.Secret),
			callbackURL("gitea"),
			string(conf.Auth.Providers.Gitea.AuthURL),
			string(conf.Auth.Providers.Gitea.TokenURL),
			string(conf.Auth.Providers.Gitea.ProfileURL),
			conf.Auth.Providers.Gitea.Scopes...,
		)

		gothProviders = append(gothProviders, giteaProvider)

		providers = append(providers, oauth2.Provider{
			ID:    giteaProvider.Name(),
			Label: string(conf.Auth.Providers.Gitea.Label),
			Icon:  "fa-brands fa-git-alt",
		})
	}

	if conf.Auth.Providers.OIDC.Key != "" && conf.Auth.Providers.OIDC.Secret != "" {
		oidcProvider, err := openidConnect.New(
			string(conf.Auth.Providers.OIDC.Key),
			string(conf.Auth.Providers.OIDC.Secret),
			callbackURL("openid-connect"),
			string(conf.Auth.Providers.OIDC.DiscoveryURL),
			conf.Auth.Providers.OIDC.Scopes...,
		)
		if err != nil {
			return nil, nil, errors.Wrap(err, "could not configure oidc provider")
		}

		gothProviders = append(gothProviders, oidcProvider)

		providers = append(providers, oauth2.Provider{
			ID:    oidcProvider.Name(),
			Label: string(conf.Auth.Providers.OIDC.Label),
			Icon:  string(conf.Auth.Providers.OIDC.Icon),
		})
	}

	return gothProviders, providers, nil
}

func getRandomBytes(n int) ([]byte, error) {
	data := make([]byte, n)

	read, err := rand.Read(data)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if read != n {
		return nil, errors.Errorf("could not read %d bytes", n)
	}

	return data, nil
}
