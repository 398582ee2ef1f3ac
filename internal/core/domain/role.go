package domain

type Role string

const (
	RoleAccountManager Role = "Account-Manager"
	RoleDeveloper      Role = "Developer"
	RoleUser           Role = "User"
)

// KnownRoles returns every role the authorization gate can resolve.
func KnownRoles() []Role {
	return []Role{RoleAccountManager, RoleDeveloper, RoleUser}
}
