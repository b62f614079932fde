package setup

import (
	"context"
	"strings"

	"github.com/navanexis/site/internal/authz"
	"github.com/navanexis/site/internal/authz/expr"
	"github.com/navanexis/site/internal/config"
	"github.com/pkg/errors"
)

func NewPolicyFromConfig(ctx context.Context, conf *config.Config) (*authz.Policy, error) {
	admins := make([]authz.Admin, 0, len(conf.Auth.Admins))
	for _, a := range conf.Auth.Admins {
		email := strings.TrimSpace(string(a.Email))
		if email == "" {
			continue
		}

		admins = append(admins, authz.Admin{
			Email:    email,
			Provider: string(a.Provider),
		})
	}

	rules := make([]authz.Rule, 0)
	if conf.Auth.AdminRules != nil {
		for _, script := range *conf.Auth.AdminRules {
			if strings.TrimSpace(script) == "" {
				continue
			}

			rule := expr.NewRule(script)
			if err := rule.Compile(); err != nil {
				return nil, errors.Wrapf(err, "could not compile admin rule '%s'", script)
			}

			rules = append(rules, rule)
		}
	}

	return authz.NewPolicy(admins, rules...), nil
}
