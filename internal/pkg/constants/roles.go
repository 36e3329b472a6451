package constants

const (
	Admin               = "admin"
	RelationshipManager = "relationship_manager"
	Customer            = "customer"
)

// ValidRoles is the set of allowed values for Users.role.
var ValidRoles = []string{Customer, RelationshipManager, Admin}

// IsValidRole returns true if role is one of the allowed values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
