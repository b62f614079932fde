package ui

type HeadTemplateData struct {
	PageTitle string
	SiteName  string
}

type BrandTemplateData struct {
	Name    string
	Tagline string
	LogoURL string
	HomeURL string
}

// AccountTemplateData drives the login/logout area of the navbar and the
// mobile menu.
type AccountTemplateData struct {
	Loading       bool
	Authenticated bool
	FirstName     string
	ShowAdminLink bool
	AdminURL      string
	LoginURL      string
	LogoutURL     string
}

type FooterTemplateData struct {
	Description string
	Phones      []string
	Email       string
	QuickLinks  []NavbarLink
	Services    []string
}

// ShellTemplateData is the view model shared by every page rendered
// inside the site shell.
type ShellTemplateData struct {
	HeadTemplateData
	NavbarTemplateData
	Brand   BrandTemplateData
	Account AccountTemplateData
	Footer  FooterTemplateData
	ChatURL string
}
