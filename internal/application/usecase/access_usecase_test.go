package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/access"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/guard"
	"github.com/jhoicas/freshbreeze-api/internal/menu"
	"github.com/jhoicas/freshbreeze-api/internal/session"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

func newAccess(store *testutil.Store) (*usecase.AccessUseCase, *session.Store) {
	fetcher := access.NewFetcher(store.Permissions(), time.Minute, zerolog.Nop())
	sessions := session.NewStore(fetcher, fetcher, nil, time.Hour)
	return usecase.NewAccessUseCase(store.Users(), menu.Default(), guard.DefaultRoutes()), sessions
}

func TestMenu_VendedorVeSoloVentas(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	uc, sessions := newAccess(store)

	nodes, err := uc.Menu(context.Background(), sessions.Open("jti-1", ana.ID, acme.ID))
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"dashboard", "sales", "orders", "leads", "invoices", "my-orders"},
		menu.Keys(nodes))
}

func TestMenu_ClienteSinPermisos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	cli := store.SeedUser(acme.ID, "cli@acme.test", "secreto123", entity.RoleUser)
	uc, sessions := newAccess(store)

	nodes, err := uc.Menu(context.Background(), sessions.Open("jti-1", cli.ID, acme.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "my-orders"}, menu.Keys(nodes))
}

func TestMenu_PermisoSueltoAbreSuGrupo(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	cli := store.SeedUser(acme.ID, "cli@acme.test", "secreto123", entity.RoleUser)
	store.GrantPermissions(cli.ID, acme.ID, []string{entity.PermCategoriesManage}, nil)
	uc, sessions := newAccess(store)

	nodes, err := uc.Menu(context.Background(), sessions.Open("jti-1", cli.ID, acme.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{"dashboard", "catalog", "categories", "my-orders"}, menu.Keys(nodes))
}

func TestPermissions_FalloDeConsultaDevuelveVacio(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	store.GrantPermissions(ana.ID, acme.ID, []string{entity.PermOrdersView}, []string{entity.ModuleSales})
	store.FailPermissions = true
	uc, sessions := newAccess(store)

	out, err := uc.Permissions(context.Background(), sessions.Open("jti-1", ana.ID, acme.ID))
	require.NoError(t, err)
	assert.False(t, out.Loading)
	assert.Empty(t, out.Permissions)
	assert.Empty(t, out.Modules)
	assert.Equal(t, []string{entity.RoleSales}, out.Roles)
	assert.Equal(t, acme.ID, out.CompanyID)
}

func TestPermissions_DevuelvePermisosYModulos(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	store.GrantPermissions(ana.ID, acme.ID, []string{entity.PermOrdersView}, []string{entity.ModuleSales})
	uc, sessions := newAccess(store)

	out, err := uc.Permissions(context.Background(), sessions.Open("jti-1", ana.ID, acme.ID))
	require.NoError(t, err)
	assert.Equal(t, []string{entity.PermOrdersView}, out.Permissions)
	assert.Equal(t, []string{entity.ModuleSales}, out.Modules)
}

func TestCheckRoute_Estados(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	uc, sessions := newAccess(store)
	entry := sessions.Open("jti-1", ana.ID, acme.ID)

	cases := []struct {
		name     string
		entry    *session.Entry
		path     string
		state    guard.State
		redirect string
	}{
		{"sin sesión", nil, "/dashboard/orders", guard.StateUnauthenticated, guard.LoginPath},
		{"ruta pública sin sesión", nil, "/products", guard.StateAuthorized, ""},
		{"rol permitido", entry, "/dashboard/orders/123", guard.StateAuthorized, ""},
		{"rol no permitido", entry, "/dashboard/users", guard.StateUnauthorized, guard.DefaultPath},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := uc.CheckRoute(context.Background(), tc.entry, tc.path)
			require.NoError(t, err)
			assert.Equal(t, string(tc.state), out.State)
			assert.Equal(t, tc.redirect, out.Redirect)
		})
	}
}

func TestCheckRoute_CambioDeRolAplicaSinNuevoToken(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	ana := store.SeedUser(acme.ID, "ana@acme.test", "secreto123", entity.RoleSales)
	uc, sessions := newAccess(store)
	entry := sessions.Open("jti-1", ana.ID, acme.ID)

	require.NoError(t, store.Users().UpdateRoles(context.Background(), acme.ID, ana.ID, []string{entity.RoleAdmin}))

	out, err := uc.CheckRoute(context.Background(), entry, "/dashboard/users")
	require.NoError(t, err)
	assert.Equal(t, string(guard.StateAuthorized), out.State)
}
