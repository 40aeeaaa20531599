package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/application/dto"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
	"github.com/jhoicas/freshbreeze-api/internal/testutil"
)

// ─── Proveedores ─────────────────────────────────────────────────────────────

func TestSupplierPayment_RegistraYLista(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.SupplierPayments())

	sp, err := uc.Create(context.Background(), acme.ID, dto.SupplierRequest{Name: "Huerta Norte"})
	require.NoError(t, err)

	ayer := time.Now().Add(-24 * time.Hour)
	_, err = uc.RegisterPayment(context.Background(), acme.ID, dto.SupplierPaymentRequest{
		SupplierID: sp.ID, Amount: decimal.RequireFromString("120.555"), Method: "Transfer", PaidAt: &ayer,
	})
	require.NoError(t, err)
	hoy, err := uc.RegisterPayment(context.Background(), acme.ID, dto.SupplierPaymentRequest{
		SupplierID: sp.ID, Amount: decimal.NewFromInt(30), Method: "cash",
	})
	require.NoError(t, err)

	list, err := uc.ListPayments(context.Background(), acme.ID, sp.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, hoy.ID, list[0].ID)
	assert.Equal(t, "transfer", list[1].Method)
	assert.True(t, decimal.RequireFromString("120.56").Equal(list[1].Amount))

	err = uc.Delete(context.Background(), acme.ID, sp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSupplierPayment_ProveedorDeOtraEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.SupplierPayments())
	sp, err := uc.Create(context.Background(), globex.ID, dto.SupplierRequest{Name: "Ajeno"})
	require.NoError(t, err)

	_, err = uc.RegisterPayment(context.Background(), acme.ID, dto.SupplierPaymentRequest{
		SupplierID: sp.ID, Amount: decimal.NewFromInt(1), Method: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListPayments(context.Background(), acme.ID, sp.ID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSupplierPayment_MetodoDesconocido(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewSupplierUseCase(store.Suppliers(), store.SupplierPayments())

	_, err := uc.RegisterPayment(context.Background(), acme.ID, dto.SupplierPaymentRequest{
		SupplierID: "x", Amount: decimal.NewFromInt(1), Method: "bitcoin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Leads ───────────────────────────────────────────────────────────────────

func TestLead_EmbudoConEstadosFinales(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewLeadUseCase(store.Leads(), store.Users())

	l, err := uc.Create(context.Background(), acme.ID, dto.LeadRequest{Name: "Hotel Sol", Phone: "300"})
	require.NoError(t, err)
	assert.Equal(t, entity.LeadStatusNew, l.Status)

	for _, st := range []string{entity.LeadStatusContacted, entity.LeadStatusQualified, entity.LeadStatusWon} {
		l, err = uc.UpdateStatus(context.Background(), acme.ID, l.ID, dto.LeadStatusRequest{Status: st})
		require.NoError(t, err, st)
	}
	_, err = uc.UpdateStatus(context.Background(), acme.ID, l.ID, dto.LeadStatusRequest{Status: entity.LeadStatusContacted})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(context.Background(), acme.ID, l.ID, dto.LeadStatusRequest{Status: "perdido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLead_RequiereContactoYAsignadoDeLaEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	ajeno := store.SeedUser(globex.ID, "x@globex.test", "secreto123", entity.RoleSales)
	uc := usecase.NewLeadUseCase(store.Leads(), store.Users())

	_, err := uc.Create(context.Background(), acme.ID, dto.LeadRequest{Name: "Sin contacto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), acme.ID, dto.LeadRequest{Name: "Hotel", Email: "h@h.test", AssignedTo: ajeno.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLead_ListaPorEstado(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	uc := usecase.NewLeadUseCase(store.Leads(), store.Users())
	a, err := uc.Create(context.Background(), acme.ID, dto.LeadRequest{Name: "A", Email: "a@a.test"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), acme.ID, dto.LeadRequest{Name: "B", Email: "b@b.test"})
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), acme.ID, a.ID, dto.LeadStatusRequest{Status: entity.LeadStatusLost})
	require.NoError(t, err)

	lost, err := uc.List(context.Background(), acme.ID, entity.LeadStatusLost, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, lost, 1)
	assert.Equal(t, a.ID, lost[0].ID)

	_, err = uc.List(context.Background(), acme.ID, "otro", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Bodegas ─────────────────────────────────────────────────────────────────

func TestAssignManager_SoloRolBodega(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	jefe := store.SeedUser(acme.ID, "jefe@acme.test", "secreto123", entity.RoleWarehouseManager)
	cliente := store.SeedUser(acme.ID, "cli@acme.test", "secreto123", entity.RoleUser)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.WarehouseManagers(), store.Users())

	w, err := uc.Create(context.Background(), acme.ID, dto.CreateWarehouseRequest{Name: "Central"})
	require.NoError(t, err)

	m, err := uc.AssignManager(context.Background(), acme.ID, dto.AssignManagerRequest{UserID: jefe.ID, WarehouseID: w.ID})
	require.NoError(t, err)
	assert.Equal(t, jefe.ID, m.UserID)

	_, err = uc.AssignManager(context.Background(), acme.ID, dto.AssignManagerRequest{UserID: jefe.ID, WarehouseID: w.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.AssignManager(context.Background(), acme.ID, dto.AssignManagerRequest{UserID: cliente.ID, WarehouseID: w.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListManagers(context.Background(), acme.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.RemoveManager(context.Background(), acme.ID, m.ID))
	assert.ErrorIs(t, uc.RemoveManager(context.Background(), acme.ID, m.ID), domain.ErrNotFound)
}

func TestAssignManager_BodegaDeOtraEmpresa(t *testing.T) {
	store := testutil.NewStore()
	acme := store.SeedCompany("acme")
	globex := store.SeedCompany("globex")
	jefe := store.SeedUser(acme.ID, "jefe@acme.test", "secreto123", entity.RoleWarehouseManager)
	uc := usecase.NewWarehouseUseCase(store.Warehouses(), store.WarehouseManagers(), store.Users())
	w, err := uc.Create(context.Background(), globex.ID, dto.CreateWarehouseRequest{Name: "Ajena"})
	require.NoError(t, err)

	_, err = uc.AssignManager(context.Background(), acme.ID, dto.AssignManagerRequest{UserID: jefe.ID, WarehouseID: w.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
