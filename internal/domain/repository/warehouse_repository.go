package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Warehouse, error)
	List(ctx context.Context, companyID string) ([]*entity.Warehouse, error)
}

// WarehouseManagerRepository define el puerto de persistencia para WarehouseManager.
type WarehouseManagerRepository interface {
	Create(ctx context.Context, m *entity.WarehouseManager) error
	Delete(ctx context.Context, companyID, id string) error
	List(ctx context.Context, companyID string) ([]*entity.WarehouseManager, error)
	Exists(ctx context.Context, companyID, userID, warehouseID string) (bool, error)
}
