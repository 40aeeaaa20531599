package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/ports"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/domain/repository"
)

// MaxImageSize tamaño máximo de una imagen de producto (5 MB).
const MaxImageSize = 5 << 20

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ProductUseCase casos de uso CRUD para productos. El stock se maneja con inventory.StockService.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	storage    ports.ObjectStorage
}

// NewProductUseCase construye el caso de uso. storage puede ser nil (sin subida de imágenes).
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, storage ports.ObjectStorage) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, storage: storage}
}

// Create crea un nuevo producto. ErrDuplicate si el SKU ya existe en la empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkCategory(ctx, companyID, in.CategoryID); err != nil {
		return nil, err
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	if in.Unit == "" {
		in.Unit = "unit"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CategoryID:    in.CategoryID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Unit:          in.Unit,
		ImageURL:      in.ImageURL,
		IsActive:      active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// GetByID obtiene un producto. Con onlyActive los inactivos se tratan como inexistentes (catálogo público).
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string, onlyActive bool) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if onlyActive && !product.IsActive {
		return nil, domain.ErrNotFound
	}
	return dto.ToProductResponse(product), nil
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// Update actualiza un producto. No modifica el stock.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, companyID, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SKU != nil {
		if strings.TrimSpace(*in.SKU) == "" {
			return nil, domain.Required("sku")
		}
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.Required("name")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Invalid("price", "no puede ser negativo")
		}
		product.Price = *in.Price
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

// List lista productos de la empresa. onlyActive filtra para el catálogo público.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, q dto.ProductQuery, onlyActive bool) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, companyID, repository.ProductFilter{
		CategoryID: q.CategoryID,
		Search:     strings.TrimSpace(q.Search),
		OnlyActive: onlyActive,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un producto. ErrConflict si tiene pedidos asociados.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

// UploadImage sube la imagen al almacenamiento y guarda su URL en el producto.
func (uc *ProductUseCase) UploadImage(ctx context.Context, companyID, id, contentType string, size int64, body io.Reader) (*dto.ProductResponse, error) {
	if uc.storage == nil {
		return nil, fmt.Errorf("%w: almacenamiento no configurado", domain.ErrUpstream)
	}
	ext, ok := imageExt[contentType]
	if !ok {
		return nil, domain.Invalid("image", "formato no soportado (jpeg, png, webp, gif)")
	}
	if size <= 0 || size > MaxImageSize {
		return nil, domain.Invalid("image", "tamaño máximo 5 MB")
	}
	product, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	key := path.Join("products", companyID, id, uuid.New().String()+ext)
	url, err := uc.storage.Put(ctx, key, body, size, contentType)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "storage", Err: err}
	}
	product.ImageURL = url
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return dto.ToProductResponse(product), nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, companyID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, companyID, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("category_id", "la categoría no existe")
	}
	return nil
}
