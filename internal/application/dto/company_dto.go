package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// RegisterCompanyRequest alta de empresa con su usuario administrador.
// Slug es opcional: si falta se deriva del nombre.
type RegisterCompanyRequest struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

// Validate campos obligatorios de empresa y administrador.
func (r *RegisterCompanyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.AdminEmail = strings.ToLower(strings.TrimSpace(r.AdminEmail))
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	switch {
	case r.Name == "":
		return domain.Required("name")
	case r.AdminEmail == "":
		return domain.Required("admin_email")
	case !strings.Contains(r.AdminEmail, "@"):
		return domain.Invalid("admin_email", "formato inválido")
	case len(r.AdminPassword) < 8:
		return domain.Invalid("admin_password", "mínimo 8 caracteres")
	}
	return nil
}

// CompanyResponse salida pública de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterCompanyResponse empresa creada, administrador y token listo para usar.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
	Modules []string        `json:"modules"`
	Token   string          `json:"token"`
}

// ToCompanyResponse convierte la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
