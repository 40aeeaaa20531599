package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository        = (*WarehouseRepo)(nil)
	_ repository.WarehouseManagerRepository = (*WarehouseManagerRepo)(nil)
)

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL.
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouses (id, company_id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.CompanyID, w.Name, w.Address, w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega de la empresa; nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM warehouses WHERE id = $1 AND company_id = $2`, id, companyID).
		Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	return &w, nil
}

// List bodegas de la empresa por nombre.
func (r *WarehouseRepo) List(ctx context.Context, companyID string) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, name, address, created_at, updated_at
		FROM warehouses WHERE company_id = $1 ORDER BY name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.CompanyID, &w.Name, &w.Address, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// WarehouseManagerRepo asignaciones usuario ↔ bodega.
type WarehouseManagerRepo struct {
	q Querier
}

func NewWarehouseManagerRepository(q Querier) *WarehouseManagerRepo {
	return &WarehouseManagerRepo{q: q}
}

func (r *WarehouseManagerRepo) Create(ctx context.Context, m *entity.WarehouseManager) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO warehouse_managers (id, company_id, user_id, warehouse_id, assigned_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.CompanyID, m.UserID, m.WarehouseID, m.AssignedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert warehouse manager: %w", err)
	}
	return nil
}

func (r *WarehouseManagerRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_managers WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete warehouse manager: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *WarehouseManagerRepo) List(ctx context.Context, companyID string) ([]*entity.WarehouseManager, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, user_id, warehouse_id, assigned_at
		FROM warehouse_managers WHERE company_id = $1 ORDER BY assigned_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list warehouse managers: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseManager
	for rows.Next() {
		var m entity.WarehouseManager
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.UserID, &m.WarehouseID, &m.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse manager: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *WarehouseManagerRepo) Exists(ctx context.Context, companyID, userID, warehouseID string) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM warehouse_managers WHERE company_id = $1 AND user_id = $2 AND warehouse_id = $3)`,
		companyID, userID, warehouseID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check warehouse manager: %w", err)
	}
	return ok, nil
}
