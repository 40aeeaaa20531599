package repository

import "context"

// PermissionRepository expone los procedimientos de permisos por empresa.
type PermissionRepository interface {
	// UserPermissions códigos de permiso (get_user_permissions).
	UserPermissions(ctx context.Context, userID, companyID string) ([]string, error)
	// UserModules códigos de módulo accesibles (get_user_accessible_modules).
	UserModules(ctx context.Context, userID, companyID string) ([]string, error)
}
