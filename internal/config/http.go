package config

import (
	"time"

	"github.com/goccy/go-yaml"
)

type HTTP struct {
	Address   InterpolatedString `yaml:"address"`
	BaseURL   InterpolatedString `yaml:"baseUrl"`
	Session   Session            `yaml:"session"`
	RateLimit RateLimit          `yaml:"rateLimit"`
	Secure    Secure             `yaml:"secure"`
	Debug     Debug              `yaml:"debug"`
}

type Session struct {
	// Secret is derived into the cookie hash and block keys when Keys is empty
	Secret InterpolatedString      `yaml:"secret"`
	Keys   InterpolatedStringSlice `yaml:"keys"`
	Store  SessionStore            `yaml:"store"`
	Cookie Cookie                  `yaml:"cookie"`
}

type SessionStore struct {
	Type InterpolatedString `yaml:"type"`
	Dir  InterpolatedString `yaml:"dir"`
}

const (
	SessionStoreCookie     = "cookie"
	SessionStoreFilesystem = "filesystem"
)

type Cookie struct {
	Path     InterpolatedString    `yaml:"path"`
	HTTPOnly InterpolatedBool      `yaml:"httpOnly"`
	Secure   InterpolatedBool      `yaml:"secure"`
	MaxAge   *InterpolatedDuration `yaml:"maxAge"`
}

type RateLimit struct {
	Rate  InterpolatedFloat `yaml:"rate"`
	Burst InterpolatedInt   `yaml:"burst"`
}

type Secure struct {
	Development InterpolatedBool `yaml:"development"`
}

type Debug struct {
	Profiling InterpolatedBool `yaml:"profiling"`
}

func NewDefaultHTTPConfig() HTTP {
	return HTTP{
		Address: "${NAVANEXIS_HTTP_ADDRESS:-:8080}",
		BaseURL: "${NAVANEXIS_HTTP_BASE_URL:-http://localhost:8080}",
		Session: Session{
			Secret: "${NAVANEXIS_SESSION_SECRET}",
			Keys:   InterpolatedStringSlice{},
			Store: SessionStore{
				Type: "${NAVANEXIS_SESSION_STORE_TYPE:-cookie}",
				Dir:  "${NAVANEXIS_SESSION_STORE_DIR:-./data/sessions}",
			},
			Cookie: Cookie{
				Path:     "/",
				HTTPOnly: true,
				Secure:   false,
				MaxAge:   NewInterpolatedDuration(24 * time.Hour),
			},
		},
		RateLimit: RateLimit{
			Rate:  2,
			Burst: 10,
		},
		Secure: Secure{
			Development: false,
		},
		Debug: Debug{
			Profiling: false,
		},
	}
}

func NewHTTPConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                      []*yaml.Comment{yaml.HeadComment(" Webserver configuration")},
		".address":              []*yaml.Comment{yaml.HeadComment(" Webserver's listening address")},
		".baseUrl":              []*yaml.Comment{yaml.HeadComment(" Public base URL, used to build OAuth2 callback URLs")},
		".session":              []*yaml.Comment{yaml.HeadComment(" User sessions")},
		".session.secret":       []*yaml.Comment{yaml.HeadComment(" Secret used to derive cookie signing and encryption keys", " A random key is generated on startup when both secret and keys are empty")},
		".session.keys":         []*yaml.Comment{yaml.HeadComment(" Explicit cookie key pairs (hash key, block key, ...), takes precedence over secret")},
		".session.store.type":   []*yaml.Comment{yaml.HeadComment(" Session store type", " Available: [cookie filesystem]")},
		".session.store.dir":    []*yaml.Comment{yaml.HeadComment(" Sessions directory, used by the filesystem store")},
		".session.cookie":       []*yaml.Comment{yaml.HeadComment(" Session cookie attributes")},
		".rateLimit":            []*yaml.Comment{yaml.HeadComment(" Rate limiting of authentication endpoints, per client address")},
		".rateLimit.rate":       []*yaml.Comment{yaml.HeadComment(" Allowed requests per second")},
		".rateLimit.burst":      []*yaml.Comment{yaml.HeadComment(" Maximum burst of requests")},
		".secure.development":   []*yaml.Comment{yaml.HeadComment(" Relax security headers for local development")},
		".debug.profiling":      []*yaml.Comment{yaml.HeadComment(" Expose pprof profiles under /debug/pprof/ to admins")},
	}
}
