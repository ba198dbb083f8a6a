package enums

// SystemRole is the platform-wide role stored on a user and carried in access tokens.
type SystemRole string

const (
	SystemRoleClient SystemRole = "client"
	SystemRoleAdmin  SystemRole = "admin"
)

// String implements fmt.Stringer.
func (r SystemRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known SystemRole.
func (r SystemRole) IsValid() bool {
	return r == SystemRoleClient || r == SystemRoleAdmin
}
