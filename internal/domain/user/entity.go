package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleFinance    Role = "finance"
	RoleManager    Role = "manager"
	RoleTeamMember Role = "team_member"
)

// roleRank defines the total order over roles. Lower rank wins when a
// principal holds more than one role.
var roleRank = map[Role]int{
	RoleAdmin:      1,
	RoleHR:         2,
	RoleFinance:    3,
	RoleManager:    4,
	RoleTeamMember: 5,
}

// Rank returns the privilege rank of the role. Unknown roles rank below
// every defined role.
func (r Role) Rank() int {
	if rank, ok := roleRank[r]; ok {
		return rank
	}
	return len(roleRank) + 1
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// PrimaryRole resolves a set of role assignments to the single
// highest-privilege role. Returns false when the set is empty or holds no
// valid role.
func PrimaryRole(roles []Role) (Role, bool) {
	best := Role("")
	for _, r := range roles {
		if !r.Valid() {
			continue
		}
		if best == "" || r.Rank() < best.Rank() {
			best = r
		}
	}
	return best, best != ""
}

type User struct {
	ID              string
	Email           string
	PasswordHash    *string
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RoleAssignment maps a principal to one role. A principal may hold several.
type RoleAssignment struct {
	ID        string
	UserID    string
	Role      Role
	CreatedAt time.Time
}
