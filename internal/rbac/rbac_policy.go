package rbac

// Company-level roles. A user picks these up by having a row in
// company_administrators, company_lawyers or company_investors.
const (
	RoleAdministrator = "administrator"
	RoleLawyer        = "lawyer"
	RoleInvestor      = "investor"
)

// Resources and actions checked by the routes.
const (
	ResourceCompany  = "company"
	ResourceCapTable = "cap_table"
	ResourceDividend = "dividend"
	ResourceRole     = "role"
	ResourceUser     = "user"

	ActionRead     = "read"
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionFinalize = "finalize"
	ActionManage   = "manage"
)

type Permission struct {
	Resource string
	Action   string
}

var rolePermissions = map[string][]Permission{
	RoleAdministrator: {
		{ResourceCompany, ActionRead},
		{ResourceCompany, ActionUpdate},
		{ResourceCapTable, ActionRead},
		{ResourceCapTable, ActionCreate},
		{ResourceDividend, ActionRead},
		{ResourceDividend, ActionFinalize},
		{ResourceRole, ActionRead},
		{ResourceRole, ActionManage},
		{ResourceUser, ActionRead},
	},
	RoleLawyer: {
		{ResourceCompany, ActionRead},
		{ResourceCapTable, ActionRead},
		{ResourceDividend, ActionRead},
		{ResourceRole, ActionRead},
	},
	RoleInvestor: {
		{ResourceCompany, ActionRead},
		{ResourceDividend, ActionRead},
	},
}

// PermissionsFor returns the static permission set of role.
func PermissionsFor(role string) []Permission {
	return rolePermissions[role]
}
