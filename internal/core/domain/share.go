package domain

// SharePermission is the access level granted on a shared dashboard.
type SharePermission string

const (
	PermissionView SharePermission = "VIEW"
	PermissionEdit SharePermission = "EDIT"
)

// Allows reports whether p satisfies the required permission level.
// EDIT implies VIEW.
func (p SharePermission) Allows(required SharePermission) bool {
	if p == PermissionEdit {
		return true
	}
	return p == required
}

// DashboardShare grants another user access to the owner's dashboard.
// EDIT permission gates transaction mutation on the owner's accounts;
// VIEW grants read-only access.
type DashboardShare struct {
	ShareID          string          `json:"shareID"` // Primary Key (UUID)
	OwnerUserID      string          `json:"ownerUserID"`
	SharedWithUserID string          `json:"sharedWithUserID"`
	Permission       SharePermission `json:"permission"`
	AuditFields
}
