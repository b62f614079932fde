package config

import "github.com/goccy/go-yaml"

type Site struct {
	Name         InterpolatedString      `yaml:"name"`
	Tagline      InterpolatedString      `yaml:"tagline"`
	Description  InterpolatedString      `yaml:"description"`
	LogoURL      InterpolatedString      `yaml:"logoUrl"`
	ChatURL      InterpolatedString      `yaml:"chatUrl"`
	Phones       InterpolatedStringSlice `yaml:"phones"`
	Email        InterpolatedString      `yaml:"email"`
	Services     InterpolatedStringSlice `yaml:"services"`
	Navigation   []NavigationItem        `yaml:"navigation"`
	TemplatesDir InterpolatedString      `yaml:"templatesDir"`
}

type NavigationItem struct {
	Name InterpolatedString `yaml:"name"`
	Path InterpolatedString `yaml:"path"`
	Icon InterpolatedString `yaml:"icon"`
}

func NewDefaultSiteConfig() Site {
	return Site{
		Name:        "Nava Nexis",
		Tagline:     "Your Vision, Our Creation",
		Description: "A professional publishing and creative solutions platform helping authors, businesses, and creators bring their ideas to life with quality, simplicity, and affordability.",
		LogoURL:     "${NAVANEXIS_SITE_LOGO_URL:-/assets/logo.svg}",
		ChatURL:     "${NAVANEXIS_SITE_CHAT_URL:-https://wa.me/916281883409}",
		Phones:      InterpolatedStringSlice{"+91 6281883409", "+91 8341848659"},
		Email:       "${NAVANEXIS_SITE_EMAIL:-navanexis@gmail.com}",
		Services: InterpolatedStringSlice{
			"Book Publishing",
			"Creative Design",
			"Brand Solutions",
			"Content Creation",
		},
		Navigation: []NavigationItem{
			{Name: "Home", Path: ""},
			{Name: "About", Path: "About", Icon: "fa-users"},
			{Name: "Services", Path: "Services", Icon: "fa-briefcase"},
			{Name: "Contact", Path: "Contact", Icon: "fa-phone"},
		},
		TemplatesDir: "${NAVANEXIS_SITE_TEMPLATES_DIR}",
	}
}

func NewSiteConfigCommentMap() yaml.CommentMap {
	return yaml.CommentMap{
		"":              []*yaml.Comment{yaml.HeadComment(" Site identity and shell content")},
		".logoUrl":      []*yaml.Comment{yaml.HeadComment(" Logo displayed in the header and the footer")},
		".chatUrl":      []*yaml.Comment{yaml.HeadComment(" External chat link (\"Chat Now\")")},
		".services":     []*yaml.Comment{yaml.HeadComment(" Services listed in the footer")},
		".navigation":   []*yaml.Comment{yaml.HeadComment(" Ordered navigation items, 'path' is the page name (empty for the home page)")},
		".templatesDir": []*yaml.Comment{yaml.HeadComment(" Optional directory of templates overriding the embedded ones", " (templates/views/*.gohtml, templates/layouts/*.gohtml)")},
	}
}
