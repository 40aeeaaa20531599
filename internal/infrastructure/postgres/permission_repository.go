package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo llama a los procedimientos de permisos.
type PermissionRepo struct {
	q Querier
}

func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// UserPermissions get_user_permissions(user, company).
func (r *PermissionRepo) UserPermissions(ctx context.Context, userID, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT permission_code FROM get_user_permissions($1, $2)`, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("get_user_permissions: %w", err)
	}
	return collectStrings(rows)
}

// UserModules get_user_accessible_modules(user, company).
func (r *PermissionRepo) UserModules(ctx context.Context, userID, companyID string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT module FROM get_user_accessible_modules($1, $2)`, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("get_user_accessible_modules: %w", err)
	}
	return collectStrings(rows)
}

// collectStrings lee una columna de texto; nunca devuelve nil sin error.
func collectStrings(rows pgx.Rows) ([]string, error) {
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
