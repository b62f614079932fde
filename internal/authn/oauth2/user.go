package oauth2

import (
	"encoding/gob"
	"strings"

	"github.com/navanexis/site/internal/authn"
)

func init() {
	gob.Register(&User{})
}

type User struct {
	Subject  string
	Provider string

	Name     string
	Nickname string
	Email    string

	AccessToken string
	IDToken     string
}

// DisplayName returns the most human name known for the user.
func (u *User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}

	if nickname := strings.TrimSpace(u.Nickname); nickname != "" {
		return nickname
	}

	local, _, _ := strings.Cut(u.Email, "@")

	return local
}

// Provider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// Subject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

var _ authn.User = &User{}
