// Package authz builds the casbin enforcer that guards back-office operations.
package authz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

// ErrBadRule is returned for a policy or role line with the wrong number of values.
var ErrBadRule = errors.New("authz: malformed rule")

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

// New returns an in-memory RBAC enforcer.
//
// Each policy is "role, object, action" and each role is "subject, role",
// for example "admin, users, export" and "alice, admin".
func New(policies, roles []string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz: model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz: enforcer: %w", err)
	}

	ps, err := parse(policies, 3)
	if err != nil {
		return nil, err
	}
	if len(ps) > 0 {
		if _, err := e.AddPolicies(ps); err != nil {
			return nil, fmt.Errorf("authz: policies: %w", err)
		}
	}

	gs, err := parse(roles, 2)
	if err != nil {
		return nil, err
	}
	if len(gs) > 0 {
		if _, err := e.AddGroupingPolicies(gs); err != nil {
			return nil, fmt.Errorf("authz: roles: %w", err)
		}
	}

	return e, nil
}

func parse(lines []string, width int) ([][]string, error) {
	rules := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) != width {
			return nil, fmt.Errorf("%w: %q", ErrBadRule, line)
		}

		rule := make([]string, width)
		for i, p := range parts {
			rule[i] = strings.TrimSpace(p)
			if rule[i] == "" {
				return nil, fmt.Errorf("%w: %q", ErrBadRule, line)
			}
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
