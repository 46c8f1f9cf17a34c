package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// roleTier orders roles for permission checks. Higher wins.
var roleTier = map[UserRole]int{
	RoleEmployee: 1,
	RoleManager:  2,
	RoleAdmin:    3,
}

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	Roles        []UserRole `json:"roles"`
	EmployeeID   *int64     `json:"employee_id,omitempty"`
}

func IsValidRole(role UserRole) bool {
	_, ok := roleTier[role]
	return ok
}

func IsValidRoleList(roles []UserRole) bool {
	if len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		if !IsValidRole(role) {
			return false
		}
	}
	return true
}

// NormalizeRoles drops duplicates while preserving first-seen order.
func NormalizeRoles(roles []UserRole) []UserRole {
	seen := make(map[UserRole]struct{}, len(roles))
	normalized := make([]UserRole, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		normalized = append(normalized, role)
	}
	return normalized
}

// EnsureDefaultRole guarantees every account carries at least the employee
// role.
func EnsureDefaultRole(roles []UserRole) []UserRole {
	if len(roles) == 0 {
		return []UserRole{RoleEmployee}
	}
	return roles
}

// HighestRole returns the most privileged role in the list, falling back to
// employee for an empty list.
func HighestRole(roles []UserRole) UserRole {
	highest := RoleEmployee
	for _, role := range roles {
		if roleTier[role] > roleTier[highest] {
			highest = role
		}
	}
	return highest
}

// HasAtLeast reports whether any held role meets the required tier.
func HasAtLeast(roles []UserRole, required UserRole) bool {
	need, ok := roleTier[required]
	if !ok {
		return false
	}
	for _, role := range roles {
		if roleTier[role] >= need {
			return true
		}
	}
	return false
}
