package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

type fakeStorage struct {
	keys []string
	body []byte
	err  error
}

func (f *fakeStorage) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(body)
	f.keys = append(f.keys, key)
	f.body = b
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, _ string) error { return nil }

func boolPtr(b bool) *bool { return &b }

func TestCreateProduct_SKUDuplicadoEnLaEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)
	in := dto.CreateProductRequest{SKU: "MAN-01", Name: "Mango", Price: decimal.NewFromInt(3)}

	out, err := uc.Create(context.Background(), acme.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "unit", out.Unit)
	assert.True(t, out.IsActive)

	_, err = uc.Create(context.Background(), acme.ID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(context.Background(), globex.ID, in)
	assert.NoError(t, err)
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)

	_, err := uc.Create(context.Background(), acme.ID, dto.CreateProductRequest{
		SKU: "X", Name: "X", CategoryID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_PrecioNegativo(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)

	_, err := uc.Create(context.Background(), acme.ID, dto.CreateProductRequest{
		SKU: "X", Name: "X", Price: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogo_OcultaInactivos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "mango", 3, 10)
	pera := store.SeedProduct(acme.ID, "pera", 1, 10)
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)

	_, err := uc.Update(context.Background(), acme.ID, pera.ID, dto.UpdateProductRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)

	public, err := uc.List(context.Background(), acme.ID, dto.ProductQuery{}, true)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, mango.ID, public.Items[0].ID)

	all, err := uc.List(context.Background(), acme.ID, dto.ProductQuery{}, false)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	_, err = uc.GetByID(context.Background(), acme.ID, pera.ID, true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByID(context.Background(), acme.ID, pera.ID, false)
	assert.NoError(t, err)
}

func TestUpdateProduct_NoTocaStock(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "mango", 3, 10)
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)
	price := decimal.RequireFromString("4.50")

	out, err := uc.Update(context.Background(), acme.ID, mango.ID, dto.UpdateProductRequest{Price: &price})
	require.NoError(t, err)
	assert.True(t, price.Equal(out.Price))
	assert.True(t, store.Stock(mango.ID).Equal(decimal.NewFromInt(10)))
}

func TestUploadImage_GuardaURLConClavePorEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "mango", 3, 10)
	fs := &fakeStorage{}
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), fs)

	out, err := uc.UploadImage(context.Background(), acme.ID, mango.ID, "image/png", 4, bytes.NewReader([]byte("\x89PNG")))
	require.NoError(t, err)
	require.Len(t, fs.keys, 1)
	assert.True(t, strings.HasPrefix(fs.keys[0], "products/"+acme.ID+"/"+mango.ID+"/"))
	assert.True(t, strings.HasSuffix(fs.keys[0], ".png"))
	assert.Equal(t, "https://cdn.test/"+fs.keys[0], out.ImageURL)
}

func TestUploadImage_ValidaTipoYTamano(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "mango", 3, 10)
	fs := &fakeStorage{}
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), fs)

	_, err := uc.UploadImage(context.Background(), acme.ID, mango.ID, "application/pdf", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadImage(context.Background(), acme.ID, mango.ID, "image/jpeg", usecase.MaxImageSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, fs.keys)
}

func TestUploadImage_FalloDelAlmacenamiento(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	mango := store.SeedProduct(acme.ID, "mango", 3, 10)
	uc := usecase.NewProductUseCase(store.Products(), store.Categories(), &fakeStorage{err: errors.New("timeout")})

	_, err := uc.UploadImage(context.Background(), acme.ID, mango.ID, "image/webp", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestCategorias_SlugYBorradoConProductos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	categories := usecase.NewCategoryUseCase(store.Categories())
	products := usecase.NewProductUseCase(store.Products(), store.Categories(), nil)

	frutas, err := categories.Create(context.Background(), acme.ID, dto.CategoryRequest{Name: "Frutas Tropicales"})
	require.NoError(t, err)
	assert.Equal(t, "frutas-tropicales", frutas.Slug)

	_, err = categories.Create(context.Background(), acme.ID, dto.CategoryRequest{Name: "frutas tropicales"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = products.Create(context.Background(), acme.ID, dto.CreateProductRequest{SKU: "M", Name: "Mango", CategoryID: frutas.ID})
	require.NoError(t, err)

	err = categories.Delete(context.Background(), acme.ID, frutas.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := categories.List(context.Background(), acme.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
