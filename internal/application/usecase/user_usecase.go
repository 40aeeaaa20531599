package usecase

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// PermissionForgetter descarta permisos cacheados de un usuario (session.Store).
type PermissionForgetter interface {
	Forget(userID, companyID string)
}

// UserUseCase administración de usuarios de la empresa (solo admin).
type UserUseCase struct {
	repo   repository.UserRepository
	forget PermissionForgetter
}

// NewUserUseCase construye el caso de uso. forget puede ser nil.
func NewUserUseCase(repo repository.UserRepository, forget PermissionForgetter) *UserUseCase {
	return &UserUseCase{repo: repo, forget: forget}
}

// List usuarios de la empresa con paginación.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *dto.ToUserResponse(u))
	}
	return &dto.UserListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateRoles reemplaza los roles del usuario e invalida sus permisos cacheados.
// Un admin no puede quitarse a sí mismo el rol admin.
func (uc *UserUseCase) UpdateRoles(ctx context.Context, companyID, actorID, userID string, in dto.UpdateRolesRequest) (*dto.UserResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if actorID == userID && !containsRole(in.Roles, entity.RoleAdmin) {
		return nil, domain.Invalid("roles", "no puede quitarse el rol admin a sí mismo")
	}
	if err := uc.repo.UpdateRoles(ctx, companyID, userID, dedupe(in.Roles)); err != nil {
		return nil, err
	}
	if uc.forget != nil {
		uc.forget.Forget(userID, companyID)
	}
	user, err := uc.repo.GetByID(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
