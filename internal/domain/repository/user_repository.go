package repository

import (
	"context"

	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	GetByEmailAndCompany(ctx context.Context, email, companyID string) (*entity.User, error)
	// FindByEmail busca en cualquier empresa (login sin subdominio).
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRoles(ctx context.Context, companyID, id string, roles []string) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.User, error)
}
