package authn

// User is an authenticated principal, identified by its subject at a
// given identity provider.
type User interface {
	UserSubject() string
	UserProvider() string
}
