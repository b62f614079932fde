package expr

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/pkg/errors"
)

// WithRuleAPI exposes the helper functions available to admin rules.
func WithRuleAPI() expr.Option {
	return expr.Function(
		"domain",
		func(params ...any) (any, error) {
			email, ok := params[0].(string)
			if !ok {
				return nil, errors.Errorf("unexpected domain() argument type '%T', expected string", params[0])
			}

			return domain(email), nil
		},
		new(func(string) string),
	)
}

func domain(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}

	return strings.ToLower(domain)
}
