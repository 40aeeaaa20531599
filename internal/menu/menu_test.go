package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/freshbreeze-api/internal/menu"
)

func sampleTree() []menu.Node {
	return []menu.Node{
		{Key: "home", Label: "Inicio"},
		{Key: "reports", Label: "Reportes", Roles: []string{"admin"}},
		{Key: "sales", Label: "Ventas", Roles: []string{"sales"}, Children: []menu.Node{
			{Key: "orders", Label: "Pedidos", Roles: []string{"sales"}},
			{Key: "refunds", Label: "Reembolsos", Roles: []string{"admin"}},
		}},
		{Key: "tools", Label: "Herramientas", Roles: []string{"admin"}, Children: []menu.Node{
			{Key: "export", Label: "Exportar", Permissions: []string{"orders.export"}},
		}},
		{Key: "stock", Label: "Inventario", Module: "warehouse"},
	}
}

// ─── Reglas de filtrado ──────────────────────────────────────────────────────

func TestFilter_AdminVeTodo(t *testing.T) {
	got := menu.Filter(sampleTree(), menu.Subject{Roles: []string{"admin"}})
	assert.Equal(t, menu.Keys(sampleTree()), menu.Keys(got))
}

func TestFilter_VentasSinAccesoAItemAdmin(t *testing.T) {
	got := menu.Filter(sampleTree(), menu.Subject{Roles: []string{"sales"}})
	assert.Equal(t, []string{"home", "sales", "orders"}, menu.Keys(got))
}

func TestFilter_NodoRestringidoSeConservaPorHijoVisible(t *testing.T) {
	got := menu.Filter(sampleTree(), menu.Subject{
		Roles:       []string{"user"},
		Permissions: []string{"orders.export"},
	})
	assert.Equal(t, []string{"home", "tools", "export"}, menu.Keys(got))
}

func TestFilter_ModuloAccesible(t *testing.T) {
	got := menu.Filter(sampleTree(), menu.Subject{Modules: []string{"warehouse"}})
	assert.Equal(t, []string{"home", "stock"}, menu.Keys(got))
}

func TestFilter_SinRolesSoloNodosLibres(t *testing.T) {
	got := menu.Filter(sampleTree(), menu.Subject{})
	assert.Equal(t, []string{"home"}, menu.Keys(got))
}

func TestFilter_ConservaOrdenDeHermanos(t *testing.T) {
	nodes := []menu.Node{
		{Key: "c", Roles: []string{"sales"}},
		{Key: "a"},
		{Key: "x", Roles: []string{"accounts"}},
		{Key: "b", Roles: []string{"sales"}},
	}
	got := menu.Filter(nodes, menu.Subject{Roles: []string{"sales"}})
	assert.Equal(t, []string{"c", "a", "b"}, menu.Keys(got))
}

func TestFilter_NoModificaEntrada(t *testing.T) {
	in := sampleTree()
	before := menu.Keys(in)

	got := menu.Filter(in, menu.Subject{Roles: []string{"sales"}})
	require.NotEmpty(t, got)
	got[1].Children[0].Label = "cambiado"
	got[1].Roles[0] = "otro"

	assert.Equal(t, before, menu.Keys(in))
	assert.Len(t, in[2].Children, 2)
	assert.Equal(t, "Pedidos", in[2].Children[0].Label)
	assert.Equal(t, "sales", in[2].Roles[0])
}

// ─── Menú por defecto ────────────────────────────────────────────────────────

func TestDefault_AdminNoPierdeNodosDeNivelSuperior(t *testing.T) {
	all := menu.Default()
	got := menu.Filter(all, menu.Subject{Roles: []string{"admin"}})
	require.Len(t, got, len(all))
	for i := range all {
		assert.Equal(t, all[i].Key, got[i].Key)
	}
}

func TestDefault_GrupoSinHijosAccesiblesSeOculta(t *testing.T) {
	got := menu.Filter(menu.Default(), menu.Subject{Roles: []string{"user"}})
	assert.Equal(t, []string{"dashboard", "my-orders"}, menu.Keys(got))
}

func TestDefault_Contabilidad(t *testing.T) {
	got := menu.Filter(menu.Default(), menu.Subject{Roles: []string{"accounts"}})
	assert.Equal(t, []string{
		"dashboard",
		"sales", "invoices",
		"procurement", "suppliers", "supplier-payments",
		"my-orders",
	}, menu.Keys(got))
}
