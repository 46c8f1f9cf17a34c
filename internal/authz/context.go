package authz

import (
	"context"
	"net/http"

	"github.com/hrstack/hr-api/internal/models"
)

type contextKey string

const (
	userIDKey     contextKey = "user_id"
	employeeIDKey contextKey = "employee_id"
	userRolesKey  contextKey = "user_roles"
)

// WithIdentity stores user, employee, and role information on the context.
func WithIdentity(ctx context.Context, userID string, employeeID *int64, roles []models.UserRole) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, userIDKey, userID)
	}
	if employeeID != nil {
		ctx = context.WithValue(ctx, employeeIDKey, *employeeID)
	}
	normalized := models.EnsureDefaultRole(models.NormalizeRoles(roles))
	ctx = context.WithValue(ctx, userRolesKey, normalized)
	return ctx
}

func UserIDFromRequest(r *http.Request) (string, bool) {
	uid, ok := r.Context().Value(userIDKey).(string)
	if !ok || uid == "" {
		return "", false
	}
	return uid, true
}

// EmployeeIDFromRequest returns the employee record bound to the
// authenticated user, when one exists.
func EmployeeIDFromRequest(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(employeeIDKey).(int64)
	if !ok {
		return 0, false
	}
	return id, true
}

func RolesFromRequest(r *http.Request) ([]models.UserRole, bool) {
	roles, ok := r.Context().Value(userRolesKey).([]models.UserRole)
	if !ok || !models.IsValidRoleList(roles) {
		return nil, false
	}
	return roles, true
}
