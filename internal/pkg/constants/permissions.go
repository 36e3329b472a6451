package constants

const (
	ViewDashboard  = "view_dashboard"
	ViewCustomers  = "view_customers"
	SendReminders  = "send_reminders"
	ViewPortfolio  = "view_portfolio"
	RegisterDevice = "register_device"
)

// PermissionRoles maps each permission to roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewDashboard:  {RelationshipManager, Admin},
	ViewCustomers:  {RelationshipManager, Admin},
	SendReminders:  {RelationshipManager, Admin},
	ViewPortfolio:  {Customer},
	RegisterDevice: {Customer, RelationshipManager, Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
