package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// RegisterRequest registro de un cliente en la empresa resuelta por subdominio.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// Validate campos obligatorios y longitud mínima de la contraseña.
func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return domain.Required("email")
	}
	if !strings.Contains(r.Email, "@") {
		return domain.Invalid("email", "formato inválido")
	}
	if len(r.Password) < 8 {
		return domain.Invalid("password", "mínimo 8 caracteres")
	}
	return nil
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate email y contraseña presentes.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Email == "" {
		return domain.Required("email")
	}
	if r.Password == "" {
		return domain.Required("password")
	}
	return nil
}

// UpdateProfileRequest edición del propio perfil (campos opcionales).
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}

// UpdateRolesRequest reemplazo de roles por un admin.
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// Validate al menos un rol y todos conocidos.
func (r UpdateRolesRequest) Validate() error {
	if len(r.Roles) == 0 {
		return domain.Required("roles")
	}
	for _, role := range r.Roles {
		if !entity.IsValidRole(role) {
			return domain.Invalid("roles", "rol desconocido: "+role)
		}
	}
	return nil
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT más el usuario.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // segundos
	User      UserResponse `json:"user"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ToUserResponse convierte la entidad a DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Roles:     roles,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
