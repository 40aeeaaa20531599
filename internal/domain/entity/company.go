package entity

import "time"

// Company representa una organización/tenant del sistema. Slug es la clave de subdominio y no cambia tras el registro.
type Company struct {
	ID        string
	Name      string
	Slug      string
	Email     string
	Phone     string
	Address   string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
	CompanyStatusInactive  = "inactive"
)

// Módulos funcionales (deben coincidir con el CHECK de la tabla company_modules).
const (
	ModuleCatalog     = "catalog"
	ModuleSales       = "sales"
	ModuleProcurement = "procurement"
	ModuleWarehouse   = "warehouse"
	ModuleAccounts    = "accounts"
	ModuleAdmin       = "admin"
)

// DefaultModules se activan al registrar una empresa.
var DefaultModules = []string{
	ModuleCatalog, ModuleSales, ModuleProcurement, ModuleWarehouse, ModuleAccounts, ModuleAdmin,
}

// CompanyModule representa la activación de un módulo en una empresa.
type CompanyModule struct {
	CompanyID   string
	ModuleName  string
	IsActive    bool
	ActivatedAt time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
}
