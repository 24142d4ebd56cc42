package model

import "time"

// Role is the closed set of roles a user can hold. A user carries a set of
// roles, not a single one.
type Role string

const (
	RoleMember  Role = "MEMBER"
	RoleManager Role = "MANAGER"
	RoleHR      Role = "HR"
	RoleAdmin   Role = "ADMIN"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleMember, RoleManager, RoleHR, RoleAdmin:
		return true
	}
	return false
}

// HasRole reports whether the role set contains r.
func HasRole(roles []string, r Role) bool {
	for _, have := range roles {
		if have == string(r) {
			return true
		}
	}
	return false
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"` // The bcrypt hash is never exposed in JSON responses.
	Roles     []string  `json:"roles"`
	Level     *string   `json:"level,omitempty"`
	JobTitle  *string   `json:"job_title,omitempty"`
	ManagerID *int      `json:"manager_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
