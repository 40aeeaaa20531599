package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/auth"
	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
	"github.com/jhoicas/freshbreeze-api/pkg/jwt"
)

func newCompanies(store *testutil.Store) *usecase.CompanyUseCase {
	tokens := auth.NewAuthUseCase(store.Users(), store.Companies(), nil,
		auth.JWTConfig{Secret: "s", ExpMinutes: 30, Issuer: "test"}, zerolog.Nop())
	return usecase.NewCompanyUseCase(store.Companies(), store, tokens)
}

func registerReq(name, slug string) dto.RegisterCompanyRequest {
	return dto.RegisterCompanyRequest{
		Name: name, Slug: slug, Email: "info@x.test",
		AdminName: "Admin", AdminEmail: "admin@x.test", AdminPassword: "secreto123",
	}
}

func TestRegisterCompany_CreaEmpresaAdminYModulos(t *testing.T) {
	store := testutil.NewStore()
	uc := newCompanies(store)

	out, err := uc.Register(context.Background(), registerReq("Frutas Doña Inés", ""))
	require.NoError(t, err)
	assert.Equal(t, "frutas-dona-ines", out.Company.Slug)
	assert.Equal(t, []string{entity.RoleAdmin}, out.Admin.Roles)
	assert.ElementsMatch(t, entity.DefaultModules, out.Modules)

	claims, err := jwt.Parse("s", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Company.ID, claims.CompanyID)
	assert.Equal(t, []string{entity.RoleAdmin}, claims.Roles)

	mods, err := store.Companies().ListModules(context.Background(), out.Company.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, entity.DefaultModules, mods)
}

func TestRegisterCompany_SlugTomadoNoDejaRastros(t *testing.T) {
	store := testutil.NewStore()
	store.SeedCompany("acme")
	uc := newCompanies(store)

	_, err := uc.Register(context.Background(), registerReq("Acme", "acme"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	u, err := store.Users().FindByEmail(context.Background(), "admin@x.test")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRegisterCompany_SlugReservadoOInvalido(t *testing.T) {
	uc := newCompanies(testutil.NewStore())
	for _, s := range []string{"www", "-acme", "ac_me"} {
		_, err := uc.Register(context.Background(), registerReq("Acme", s))
		assert.ErrorIs(t, err, domain.ErrInvalidInput, s)
	}
}

func TestGetBySlug_SoloEmpresasActivas(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := newCompanies(store)

	out, err := uc.GetBySlug(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, out.ID)

	acme.Status = entity.CompanyStatusSuspended
	require.NoError(t, store.Companies().Update(context.Background(), acme))
	_, err = uc.GetBySlug(context.Background(), "acme")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
