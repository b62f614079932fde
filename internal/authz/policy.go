package authz

import (
	"strings"

	"github.com/pkg/errors"
)

// Subject is the identity a role is resolved for.
type Subject struct {
	Subject  string
	Provider string
	Nickname string
	Email    string
}

func (s Subject) env() map[string]any {
	return map[string]any{
		"subject":  s.Subject,
		"provider": s.Provider,
		"nickname": s.Nickname,
		"email":    s.Email,
	}
}

// Admin designates an administrator by email, optionally restricted to a
// provider. An empty provider matches any provider.
type Admin struct {
	Email    string
	Provider string
}

func (a Admin) matches(s Subject) bool {
	if !strings.EqualFold(strings.TrimSpace(a.Email), s.Email) {
		return false
	}

	return a.Provider == "" || a.Provider == s.Provider
}

type Policy struct {
	admins []Admin
	rules  []Rule
}

// Role returns RoleAdmin when the subject is listed as an administrator or
// when any admin rule matches, RoleMember otherwise.
func (p *Policy) Role(subject Subject) (Role, error) {
	for _, a := range p.admins {
		if a.matches(subject) {
			return RoleAdmin, nil
		}
	}

	for _, r := range p.rules {
		matched, err := r.Exec(subject.env())
		if err != nil {
			return "", errors.Wrapf(err, "could not execute admin rule '%s'", r.String())
		}

		if matched {
			return RoleAdmin, nil
		}
	}

	return RoleMember, nil
}

func NewPolicy(admins []Admin, rules ...Rule) *Policy {
	return &Policy{
		admins: admins,
		rules:  rules,
	}
}
