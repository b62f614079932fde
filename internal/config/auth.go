package config

import "github.com/goccy/go-yaml"

type Auth struct {
	Providers  AuthProviders            `yaml:"providers"`
	Admins     []User                   `yaml:"admins"`
	AdminRules *InterpolatedStringSlice `yaml:"adminRules"`
}

type User struct {
	Email    InterpolatedString `yaml:"email"`
	Provider InterpolatedString `yaml:"provider"`
}

type AuthProviders struct {
	Google OAuth2Provider `yaml:"google"`
	Github OAuth2Provider `yaml:"github"`
	Gitea  GiteaProvider  `yaml:"gitea"`
	OIDC   OIDCProvider   `yaml:"oidc"`
}

type OAuth2Provider struct {
	Key    InterpolatedString      `yaml:"key"`
	Secret InterpolatedString      `yaml:"secret"`
	Scopes InterpolatedStringSlice `yaml:"scopes"`
}

type OIDCProvider struct {
	OAuth2Provider `yaml:",inline"`
	DiscoveryURL   InterpolatedString `yaml:"discoveryUrl"`
	Icon           InterpolatedString `yaml:"icon"`
	Label          InterpolatedString `yaml:"label"`
}

type GiteaProvider struct {
	OAuth2Provider `yaml:",inline"`
	TokenURL       InterpolatedString `yaml:"tokenUrl"`
	AuthURL        InterpolatedString `yaml:"authUrl"`
	ProfileURL     InterpolatedString `yaml:"profileUrl"`
	Label          InterpolatedString `yaml:"label"`
}

func NewDefaultAuthConfig() Auth {
	return Auth{
		Providers: AuthProviders{
			Google: OAuth2Provider{
				Key:    "${NAVANEXIS_AUTH_GOOGLE_KEY}",
				Secret: "${NAVANEXIS_AUTH_GOOGLE_SECRET}",
				Scopes: InterpolatedStringSlice{"email", "profile"},
			},
		},
		Admins: []User{
			{
				Email:    "${NAVANEXIS_ADMIN_EMAIL}",
				Provider: "google",
			},
		},
		AdminRules: &InterpolatedStringSlice{},
	}
}

func NewAuthConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":                    []*yaml.Comment{yaml.HeadComment(" Auth configuration")},
		".providers":          []*yaml.Comment{yaml.HeadComment(" OAuth2 identity providers, enabled when both key and secret are set")},
		".admins":             []*yaml.Comment{yaml.HeadComment(" List of users with admin privileges")},
		".admins[0].email":    []*yaml.Comment{yaml.HeadComment(" Admin's email address")},
		".admins[0].provider": []*yaml.Comment{yaml.HeadComment(" Admin's identify provider (see 'providers' section)")},
		".adminRules": []*yaml.Comment{yaml.HeadComment(
			" Rules granting the admin role, evaluated against email, provider, subject and nickname",
			" Example: domain(email) == \"navanexis.com\"",
			" See https://expr-lang.org/docs/language-definition",
		)},
	}
}
