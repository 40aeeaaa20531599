package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
	"github.com/jhoicas/freshbreeze-api/pkg/slug"
)

// CategoryUseCase casos de uso de categorías del catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría; el slug se deriva del nombre.
func (uc *CategoryUseCase) Create(ctx context.Context, companyID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Category{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(c), nil
}

// Update reemplaza nombre, descripción e imagen.
func (uc *CategoryUseCase) Update(ctx context.Context, companyID, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Slug = slug.Make(in.Name)
	c.Description = in.Description
	c.ImageURL = in.ImageURL
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.ToCategoryResponse(c), nil
}

// Delete elimina la categoría. ErrConflict si tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

// List categorías de la empresa ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, companyID string) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *dto.ToCategoryResponse(c))
	}
	return out, nil
}
