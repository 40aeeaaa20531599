package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// WarehouseUseCase bodegas y asignación de responsables.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	managers repository.WarehouseManagerRepository
	users    repository.UserRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, managers repository.WarehouseManagerRepository, users repository.UserRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, managers: managers, users: users}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return dto.ToWarehouseResponse(warehouse), nil
}

// List bodegas de la empresa.
func (uc *WarehouseUseCase) List(ctx context.Context, companyID string) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, *dto.ToWarehouseResponse(w))
	}
	return out, nil
}

// AssignManager asigna un usuario con rol warehouse_manager (o admin) a una bodega.
func (uc *WarehouseUseCase) AssignManager(ctx context.Context, companyID string, in dto.AssignManagerRequest) (*dto.WarehouseManagerResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, companyID, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Invalid("user_id", "el usuario no existe")
	}
	if !entity.Roles(user.Roles).HasAny(entity.RoleWarehouseManager, entity.RoleAdmin) {
		return nil, domain.Invalid("user_id", "el usuario no tiene rol warehouse_manager")
	}
	w, err := uc.repo.GetByID(ctx, companyID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.Invalid("warehouse_id", "la bodega no existe")
	}
	exists, err := uc.managers.Exists(ctx, companyID, user.ID, w.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	m := &entity.WarehouseManager{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		UserID:      user.ID,
		WarehouseID: w.ID,
		AssignedAt:  time.Now(),
	}
	if err := uc.managers.Create(ctx, m); err != nil {
		return nil, err
	}
	return dto.ToWarehouseManagerResponse(m), nil
}

// ListManagers asignaciones vigentes de la empresa.
func (uc *WarehouseUseCase) ListManagers(ctx context.Context, companyID string) ([]dto.WarehouseManagerResponse, error) {
	list, err := uc.managers.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseManagerResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *dto.ToWarehouseManagerResponse(m))
	}
	return out, nil
}

// RemoveManager elimina una asignación.
func (uc *WarehouseUseCase) RemoveManager(ctx context.Context, companyID, id string) error {
	return uc.managers.Delete(ctx, companyID, id)
}
