package ui

import "strings"

// NavigationItem is an entry of the site navigation, rendered in order
// in the navbar, the mobile menu and the footer quick links.
type NavigationItem struct {
	Name string
	Path string
	Icon string
}

// URL returns the page URL of the item.
func (i NavigationItem) URL() string {
	return PageURL(i.Path)
}

// PageURL builds the URL of a named page. The empty name is the home page.
func PageURL(name string) string {
	return "/" + strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// NavbarLink is a navigation item resolved against the current request.
type NavbarLink struct {
	Label  string
	URL    string
	Icon   string
	Active bool
}

type NavbarTemplateData struct {
	Links         []NavbarLink
	MenuOpen      bool
	MenuToggleURL string
}
