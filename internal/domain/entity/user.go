package entity

import (
	"strings"
	"time"
)

// Roles válidos para User. Un usuario puede tener varios; admin es comodín.
const (
	RoleAdmin            = "admin"
	RoleSales            = "sales"
	RoleAccounts         = "accounts"
	RoleWarehouseManager = "warehouse_manager"
	RoleUser             = "user"
)

// ValidRoles conjunto cerrado de roles.
var ValidRoles = []string{RoleAdmin, RoleSales, RoleAccounts, RoleWarehouseManager, RoleUser}

// IsValidRole informa si r pertenece al conjunto de roles.
func IsValidRole(r string) bool {
	for _, v := range ValidRoles {
		if v == r {
			return true
		}
	}
	return false
}

// User representa un usuario/perfil del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Phone        string
	Roles        []string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Roles es una lista de roles con utilidades de consulta.
type Roles []string

// Has informa si la lista contiene role (sin distinguir mayúsculas).
func (rs Roles) Has(role string) bool {
	for _, v := range rs {
		if strings.EqualFold(v, role) {
			return true
		}
	}
	return false
}

// IsAdmin informa si la lista contiene el rol admin.
func (rs Roles) IsAdmin() bool { return rs.Has(RoleAdmin) }

// HasAny informa si la lista contiene al menos uno de los roles dados.
func (rs Roles) HasAny(roles ...string) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}
