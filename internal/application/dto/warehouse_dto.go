package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Validate nombre obligatorio, máximo 200 caracteres.
func (r *CreateWarehouseRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return domain.Required("name")
	}
	if len(r.Name) > 200 {
		return domain.Invalid("name", "máximo 200 caracteres")
	}
	return nil
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToWarehouseResponse convierte la entidad a DTO.
func ToWarehouseResponse(w *entity.Warehouse) *WarehouseResponse {
	if w == nil {
		return nil
	}
	return &WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// AssignManagerRequest asigna un usuario como responsable de una bodega.
type AssignManagerRequest struct {
	UserID      string `json:"user_id"`
	WarehouseID string `json:"warehouse_id"`
}

// Validate ambos ids obligatorios.
func (r *AssignManagerRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return domain.Required("user_id")
	}
	if strings.TrimSpace(r.WarehouseID) == "" {
		return domain.Required("warehouse_id")
	}
	return nil
}

// WarehouseManagerResponse salida de una asignación.
type WarehouseManagerResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	WarehouseID string    `json:"warehouse_id"`
	AssignedAt  time.Time `json:"assigned_at"`
}

// ToWarehouseManagerResponse convierte la entidad a DTO.
func ToWarehouseManagerResponse(m *entity.WarehouseManager) *WarehouseManagerResponse {
	if m == nil {
		return nil
	}
	return &WarehouseManagerResponse{
		ID:          m.ID,
		UserID:      m.UserID,
		WarehouseID: m.WarehouseID,
		AssignedAt:  m.AssignedAt,
	}
}
