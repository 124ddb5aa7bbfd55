// Package access holds the authorization rules that distinguish owners,
// administrators and unrelated users. Every mutating listing or rating
// operation that is not already role-restricted consults CanMutate before
// touching state, so the ownership rule lives in exactly one place.
package access

// Role is the verified role supplied by the auth layer via the JWT "role"
// claim. Only the two values below are ever issued.
type Role string

const (
	RoleUser  Role = "USER"  // regular user, owns at most one self-authored listing
	RoleAdmin Role = "ADMIN" // administrator, curates listings on behalf of the platform
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// CanMutate decides whether the actor may mutate a resource owned by
// resourceOwnerID. Administrators are always allowed; regular users only
// when they are the owner. Unknown roles are never allowed.
func CanMutate(actorID uint64, role Role, resourceOwnerID uint64) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleUser:
		return actorID == resourceOwnerID
	default:
		return false
	}
}
