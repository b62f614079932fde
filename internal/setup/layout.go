package setup

import (
	"context"

	"github.com/navanexis/site/internal/config"
	"github.com/navanexis/site/internal/shell"
	"github.com/navanexis/site/internal/site"
	"github.com/navanexis/site/internal/ui"
)

func NewLayoutFromConfig(ctx context.Context, conf *config.Config, identity shell.Identity) *shell.Layout {
	navigation := make([]ui.NavigationItem, 0, len(conf.Site.Navigation))
	for _, item := range conf.Site.Navigation {
		navigation = append(navigation, ui.NavigationItem{
			Name: string(item.Name),
			Path: string(item.Path),
			Icon: string(item.Icon),
		})
	}

	return shell.NewLayout(
		identity,
		shell.WithNavigation(navigation...),
		shell.WithBrand(string(conf.Site.Name), string(conf.Site.Tagline), string(conf.Site.LogoURL)),
		shell.WithFooter(string(conf.Site.Description), conf.Site.Phones, string(conf.Site.Email), conf.Site.Services),
		shell.WithChatURL(string(conf.Site.ChatURL)),
		shell.WithAdminURL(adminPath),
	)
}

func newSiteContentFromConfig(conf *config.Config) site.Content {
	return site.Content{
		Name:        string(conf.Site.Name),
		Tagline:     string(conf.Site.Tagline),
		Description: string(conf.Site.Description),
		Services:    conf.Site.Services,
		Phones:      conf.Site.Phones,
		Email:       string(conf.Site.Email),
		ChatURL:     string(conf.Site.ChatURL),
	}
}
