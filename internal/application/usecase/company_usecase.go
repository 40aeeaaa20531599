package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
	"github.com/jhoicas/freshbreeze-api/pkg/slug"
)

// TokenIssuer emite el JWT de un usuario ya autenticado (auth.AuthUseCase).
type TokenIssuer interface {
	IssueToken(user *entity.User) (*dto.LoginResponse, error)
}

// CompanyUseCase registro de empresas (tenants) y consulta pública por slug.
type CompanyUseCase struct {
	repo   repository.CompanyRepository
	tx     ports.TxRunner
	tokens TokenIssuer
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository, tx ports.TxRunner, tokens TokenIssuer) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, tx: tx, tokens: tokens}
}

// Register crea empresa, usuario admin y módulos por defecto en una sola transacción.
// El slug se deriva del nombre si no viene; ErrDuplicate si ya está tomado.
func (uc *CompanyUseCase) Register(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := in.Slug
	if s == "" {
		s = slug.Make(in.Name)
	}
	if !slug.Valid(s) {
		return nil, domain.Invalid("slug", "solo minúsculas, números y guiones; no reservado")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      s,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	adminName := in.AdminName
	if adminName == "" {
		adminName = in.AdminEmail
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Name:         adminName,
		Roles:        []string{entity.RoleAdmin},
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.tx.Run(ctx, func(tx ports.TxRepos) error {
		existing, err := tx.Companies.GetBySlug(ctx, s)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := tx.Companies.Create(ctx, company); err != nil {
			return err
		}
		if err := tx.Users.Create(ctx, admin); err != nil {
			return err
		}
		return tx.Companies.EnableModules(ctx, company.ID, entity.DefaultModules)
	})
	if err != nil {
		return nil, err
	}

	login, err := uc.tokens.IssueToken(admin)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterCompanyResponse{
		Company: *dto.ToCompanyResponse(company),
		Admin:   login.User,
		Modules: append([]string{}, entity.DefaultModules...),
		Token:   login.Token,
	}, nil
}

// GetBySlug datos públicos de una empresa activa.
func (uc *CompanyUseCase) GetBySlug(ctx context.Context, s string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetBySlug(ctx, s)
	if err != nil {
		return nil, err
	}
	if company == nil || company.Status != entity.CompanyStatusActive {
		return nil, domain.ErrNotFound
	}
	return dto.ToCompanyResponse(company), nil
}
