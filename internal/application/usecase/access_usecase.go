package usecase

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
	"github.com/jhoicas/freshbreeze-api/internal/guard"
	"github.com/jhoicas/freshbreeze-api/internal/menu"
	"github.com/jhoicas/freshbreeze-api/internal/session"
)

// AccessUseCase expone las decisiones del pipeline de acceso: permisos de la sesión,
// menú filtrado y guard de rutas del dashboard. Los roles se leen del usuario en BD
// para que un cambio de roles aplique sin esperar a un token nuevo.
type AccessUseCase struct {
	users  repository.UserRepository
	tree   []menu.Node
	routes *guard.Table
}

// NewAccessUseCase construye el caso de uso con el árbol de menú y la tabla de rutas.
func NewAccessUseCase(users repository.UserRepository, tree []menu.Node, routes *guard.Table) *AccessUseCase {
	return &AccessUseCase{users: users, tree: tree, routes: routes}
}

func (uc *AccessUseCase) roles(ctx context.Context, e *session.Entry) ([]string, bool, error) {
	u, err := uc.users.GetByID(ctx, e.CompanyID, e.UserID)
	if err != nil {
		return nil, false, err
	}
	if u == nil || u.Status != "active" {
		return nil, false, nil
	}
	if u.Roles == nil {
		return []string{}, true, nil
	}
	return u.Roles, true, nil
}

// Permissions roles, permisos y módulos de la sesión. Si la consulta de permisos falla
// los conjuntos vuelven vacíos.
func (uc *AccessUseCase) Permissions(ctx context.Context, e *session.Entry) (*dto.PermissionsResponse, error) {
	roles, _, err := uc.roles(ctx, e)
	if err != nil {
		return nil, err
	}
	st := e.Permissions(ctx)
	return &dto.PermissionsResponse{
		UserID:      e.UserID,
		CompanyID:   st.CompanyID,
		Roles:       nonNil(roles),
		Permissions: st.Permissions,
		Modules:     st.Modules,
		Loading:     st.Loading,
	}, nil
}

// Menu árbol del dashboard filtrado para la sesión.
func (uc *AccessUseCase) Menu(ctx context.Context, e *session.Entry) ([]menu.Node, error) {
	roles, _, err := uc.roles(ctx, e)
	if err != nil {
		return nil, err
	}
	st := e.Permissions(ctx)
	nodes := menu.Filter(uc.tree, menu.Subject{
		Roles:       roles,
		Permissions: st.Permissions,
		Modules:     st.Modules,
	})
	if nodes == nil {
		nodes = []menu.Node{}
	}
	return nodes, nil
}

// CheckRoute decisión del guard para path. e nil significa sin sesión.
func (uc *AccessUseCase) CheckRoute(ctx context.Context, e *session.Entry, path string) (*dto.RouteCheckResponse, error) {
	var user *guard.Identity
	if e != nil {
		roles, ok, err := uc.roles(ctx, e)
		if err != nil {
			return nil, err
		}
		if ok {
			user = &guard.Identity{UserID: e.UserID, Roles: roles}
		}
	}
	d := uc.routes.Check(path, false, user)
	return &dto.RouteCheckResponse{Path: path, State: string(d.State), Redirect: d.Redirect}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
