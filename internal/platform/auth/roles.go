package auth

import "fmt"

// Role is the closed set of principals known to the backend. Operations are
// gated on a Role, never on a raw string, so a typo fails at parse time
// instead of silently falling through to "unauthorized".
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole converts an external role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) String() string { return string(r) }
