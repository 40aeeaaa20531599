package dto

import (
	"strings"
	"time"

	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// LeadRequest alta o edición de un lead.
type LeadRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Source     string `json:"source"`
	Notes      string `json:"notes"`
	AssignedTo string `json:"assigned_to"`
}

// Validate nombre y al menos un dato de contacto.
func (r *LeadRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	if r.Name == "" {
		return domain.Required("name")
	}
	if r.Email == "" && r.Phone == "" {
		return domain.Invalid("email", "se requiere email o teléfono")
	}
	return nil
}

// LeadStatusRequest cambio de estado del lead.
type LeadStatusRequest struct {
	Status string `json:"status"`
}

// Validate estado dentro del conjunto permitido.
func (r *LeadStatusRequest) Validate() error {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if !entity.IsLeadStatus(r.Status) {
		return domain.Invalid("status", "estado de lead inválido")
	}
	return nil
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Source     string    `json:"source"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToLeadResponse convierte la entidad a DTO.
func ToLeadResponse(l *entity.Lead) *LeadResponse {
	if l == nil {
		return nil
	}
	return &LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Email:      l.Email,
		Phone:      l.Phone,
		Source:     l.Source,
		Status:     l.Status,
		Notes:      l.Notes,
		AssignedTo: l.AssignedTo,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
