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

// LeadUseCase embudo comercial (leads).
type LeadUseCase struct {
	leads repository.LeadRepository
	users repository.UserRepository
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(leads repository.LeadRepository, users repository.UserRepository) *LeadUseCase {
	return &LeadUseCase{leads: leads, users: users}
}

// Create registra un lead en estado new.
func (uc *LeadUseCase) Create(ctx context.Context, companyID string, in dto.LeadRequest) (*dto.LeadResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkAssignee(ctx, companyID, in.AssignedTo); err != nil {
		return nil, err
	}
	now := time.Now()
	l := &entity.Lead{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Source:     in.Source,
		Status:     entity.LeadStatusNew,
		Notes:      in.Notes,
		AssignedTo: in.AssignedTo,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	return dto.ToLeadResponse(l), nil
}

// Get lead por id.
func (uc *LeadUseCase) Get(ctx context.Context, companyID, id string) (*dto.LeadResponse, error) {
	l, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return dto.ToLeadResponse(l), nil
}

func (uc *LeadUseCase) get(ctx context.Context, companyID, id string) (*entity.Lead, error) {
	l, err := uc.leads.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	return l, nil
}

// Update reemplaza los datos del lead (el estado se cambia con UpdateStatus).
func (uc *LeadUseCase) Update(ctx context.Context, companyID, id string, in dto.LeadRequest) (*dto.LeadResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAssignee(ctx, companyID, in.AssignedTo); err != nil {
		return nil, err
	}
	l.Name = in.Name
	l.Email = in.Email
	l.Phone = in.Phone
	l.Source = in.Source
	l.Notes = in.Notes
	l.AssignedTo = in.AssignedTo
	l.UpdatedAt = time.Now()
	if err := uc.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	return dto.ToLeadResponse(l), nil
}

// UpdateStatus mueve el lead por el embudo. won y lost son finales.
func (uc *LeadUseCase) UpdateStatus(ctx context.Context, companyID, id string, in dto.LeadStatusRequest) (*dto.LeadResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	l, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if (l.Status == entity.LeadStatusWon || l.Status == entity.LeadStatusLost) && l.Status != in.Status {
		return nil, domain.ErrInvalidTransition
	}
	l.Status = in.Status
	l.UpdatedAt = time.Now()
	if err := uc.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	return dto.ToLeadResponse(l), nil
}

// Delete elimina el lead.
func (uc *LeadUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.leads.Delete(ctx, companyID, id)
}

// List leads de la empresa, opcionalmente por estado.
func (uc *LeadUseCase) List(ctx context.Context, companyID, status string, page dto.PageRequest) ([]dto.LeadResponse, error) {
	page.DefaultPage()
	if status != "" && !entity.IsLeadStatus(status) {
		return nil, domain.Invalid("status", "estado de lead inválido")
	}
	list, err := uc.leads.List(ctx, companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeadResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *dto.ToLeadResponse(l))
	}
	return out, nil
}

func (uc *LeadUseCase) checkAssignee(ctx context.Context, companyID, userID string) error {
	if userID == "" {
		return nil
	}
	u, err := uc.users.GetByID(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.Invalid("assigned_to", "el usuario no existe")
	}
	return nil
}
