package site

// Content is the site copy displayed in the page bodies.
type Content struct {
	Name        string
	Tagline     string
	Description string
	Services    []string
	Phones      []string
	Email       string
	ChatURL     string
}
