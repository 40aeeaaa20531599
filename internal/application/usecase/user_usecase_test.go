package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

type forgotten struct{ calls [][2]string }

func (f *forgotten) Forget(userID, companyID string) {
	f.calls = append(f.calls, [2]string{userID, companyID})
}

func TestUpdateRoles_ReemplazaEInvalidaPermisos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	admin := store.SeedUser(acme.ID, "admin@acme.test", "secreto123", entity.RoleAdmin)
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleUser)
	f := &forgotten{}
	uc := usecase.NewUserUseCase(store.Users(), f)

	out, err := uc.UpdateRoles(context.Background(), acme.ID, admin.ID, ana.ID,
		dto.UpdateRolesRequest{Roles: []string{entity.RoleSales, entity.RoleAccounts, entity.RoleSales}})
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleSales, entity.RoleAccounts}, out.Roles)
	assert.Equal(t, [][2]string{{ana.ID, acme.ID}}, f.calls)
}

func TestUpdateRoles_RolDesconocido(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewUserUseCase(store.Users(), nil)

	_, err := uc.UpdateRoles(context.Background(), acme.ID, "a", "b", dto.UpdateRolesRequest{Roles: []string{"root"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRoles_AdminNoSeQuitaAdmin(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	admin := store.SeedUser(acme.ID, "admin@acme.test", "secreto123", entity.RoleAdmin)
	uc := usecase.NewUserUseCase(store.Users(), nil)

	_, err := uc.UpdateRoles(context.Background(), acme.ID, admin.ID, admin.ID, dto.UpdateRolesRequest{Roles: []string{entity.RoleSales}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateRoles_UsuarioDeOtraEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	ajeno := store.SeedUser(globex.ID, "x@globex.test", "secreto123", entity.RoleUser)
	uc := usecase.NewUserUseCase(store.Users(), nil)

	_, err := uc.UpdateRoles(context.Background(), acme.ID, "admin", ajeno.ID, dto.UpdateRolesRequest{Roles: []string{entity.RoleSales}})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUsers_SoloDeLaEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	store.SeedUser(acme.ID, "a@acme.test", "secreto123", entity.RoleUser)
	store.SeedUser(acme.ID, "b@acme.test", "secreto123", entity.RoleSales)
	store.SeedUser(globex.ID, "c@globex.test", "secreto123", entity.RoleUser)
	uc := usecase.NewUserUseCase(store.Users(), nil)

	out, err := uc.List(context.Background(), acme.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "a@acme.test", out.Items[0].Email)
	assert.Equal(t, 20, out.Page.Limit)
}
