package shell

import "github.com/navanexis/site/internal/ui"

type Options struct {
	Navigation []ui.NavigationItem
	Brand      ui.BrandTemplateData
	Footer     ui.FooterTemplateData
	ChatURL    string
	AdminURL   string
	LoginURL   string
	LogoutURL  string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Navigation: []ui.NavigationItem{
			{Name: "Home", Path: ""},
		},
		Brand: ui.BrandTemplateData{
			HomeURL: ui.PageURL(""),
		},
		AdminURL:  ui.PageURL("AdminDashboard"),
		LoginURL:  ui.PageURL("login"),
		LogoutURL: ui.PageURL("logout"),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithNavigation(items ...ui.NavigationItem) OptionFunc {
	return func(opts *Options) {
		opts.Navigation = items
	}
}

func WithBrand(name, tagline, logoURL string) OptionFunc {
	return func(opts *Options) {
		opts.Brand.Name = name
		opts.Brand.Tagline = tagline
		opts.Brand.LogoURL = logoURL
	}
}

func WithFooter(description string, phones []string, email string, services []string) OptionFunc {
	return func(opts *Options) {
		opts.Footer = ui.FooterTemplateData{
			Description: description,
			Phones:      phones,
			Email:       email,
			Services:    services,
		}
	}
}

func WithChatURL(url string) OptionFunc {
	return func(opts *Options) {
		opts.ChatURL = url
	}
}

func WithAdminURL(url string) OptionFunc {
	return func(opts *Options) {
		opts.AdminURL = url
	}
}

func WithLoginURL(url string) OptionFunc {
	return func(opts *Options) {
		opts.LoginURL = url
	}
}

func WithLogoutURL(url string) OptionFunc {
	return func(opts *Options) {
		opts.LogoutURL = url
	}
}
