package auth

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const rbacModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj)
`

// Authorizer answers permission checks for roles through a casbin enforcer
// loaded from a role to permissions table.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer(rolePermissions map[string][]string) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}
	for role, perms := range rolePermissions {
		for _, perm := range perms {
			if _, err := enforcer.AddPolicy(SubjectFromRole(role), perm); err != nil {
				return nil, fmt.Errorf("authz policy %s %s: %w", role, perm, err)
			}
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

func SubjectFromRole(role string) string {
	role = strings.TrimSpace(strings.ToLower(role))
	if role == "" {
		role = "anonymous"
	}
	return "role:" + role
}

func (a *Authorizer) HasPermission(role, permission string) (bool, error) {
	return a.enforcer.Enforce(SubjectFromRole(role), permission)
}
