package models

// Role is a user's permission level.
type Role string

const (
	RoleLearner  Role = "learner"
	RoleReviewer Role = "reviewer"
	RoleAdmin    Role = "admin"
)

// roleRank orders roles so that a higher rank satisfies every lower one:
// admin ⊇ reviewer ⊇ learner.
var roleRank = map[Role]int{
	RoleLearner:  1,
	RoleReviewer: 2,
	RoleAdmin:    3,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether holding r grants the required role.
// Unknown roles satisfy nothing and are satisfied by nothing.
func (r Role) Satisfies(required Role) bool {
	have, ok := roleRank[r]
	if !ok {
		return false
	}
	need, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= need
}

// HasRole reports whether the user holds the required role or a higher one.
func HasRole(user *User, required Role) bool {
	if user == nil {
		return false
	}
	return user.Role.Satisfies(required)
}
