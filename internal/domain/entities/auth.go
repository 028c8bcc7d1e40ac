package entities

// AuthContext carries the identity of the caller into every workflow call.
// It is resolved once per request by the auth middleware from the externally
// verified identity; services never consult ambient session state.
type AuthContext struct {
	UserID string
	Role   UserRole
}

// IsOwner reports whether the caller has the owner role.
func (a AuthContext) IsOwner() bool {
	return a.Role == UserRoleOwner
}

// IsCaterer reports whether the caller has the caterer role.
func (a AuthContext) IsCaterer() bool {
	return a.Role == UserRoleCaterer
}
