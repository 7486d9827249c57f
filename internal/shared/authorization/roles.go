// Package authorization names the caller roles carried in access tokens.
package authorization

type UserRole string

const (
	// RoleBuyer is any authenticated wallet customer.
	RoleBuyer    UserRole = "buyer"
	RoleOperator UserRole = "operator"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleBuyer, RoleOperator, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole falls back to RoleBuyer for unknown values.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleBuyer
}
