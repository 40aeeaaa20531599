package entity

import "time"

// Warehouse bodega o punto de despacho.
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WarehouseManager asignación de un usuario como responsable de una bodega.
type WarehouseManager struct {
	ID          string
	CompanyID   string
	UserID      string
	WarehouseID string
	AssignedAt  time.Time
}
