package menu

import "github.com/jhoicas/freshbreeze-api/internal/domain/entity"

// group crea un nodo agrupador cuyo requisito es la unión de los de sus hijos,
// de modo que un grupo sin hijos accesibles nunca queda visible por sí mismo.
func group(key, label, icon string, children ...Node) Node {
	n := Node{Key: key, Label: label, Icon: icon, Children: children}
	seenRole := map[string]bool{}
	seenPerm := map[string]bool{}
	for _, c := range children {
		for _, r := range c.Roles {
			if !seenRole[r] {
				seenRole[r] = true
				n.Roles = append(n.Roles, r)
			}
		}
		for _, p := range c.Permissions {
			if !seenPerm[p] {
				seenPerm[p] = true
				n.Permissions = append(n.Permissions, p)
			}
		}
	}
	return n
}

// Default menú del dashboard de la plataforma. Cada llamada devuelve un árbol nuevo.
func Default() []Node {
	return []Node{
		{Key: "dashboard", Label: "Dashboard", Path: "/dashboard", Icon: "home"},
		group("catalog", "Catálogo", "package",
			Node{
				Key: "products", Label: "Productos", Path: "/dashboard/products",
				Roles:       []string{entity.RoleWarehouseManager},
				Permissions: []string{entity.PermProductsManage},
				Module:      entity.ModuleCatalog,
			},
			Node{
				Key: "categories", Label: "Categorías", Path: "/dashboard/categories",
				Permissions: []string{entity.PermCategoriesManage},
			},
			Node{
				Key: "stock", Label: "Inventario", Path: "/dashboard/inventory",
				Roles:       []string{entity.RoleWarehouseManager},
				Permissions: []string{entity.PermInventoryAdjust},
			},
		),
		group("sales", "Ventas", "shopping-cart",
			Node{
				Key: "orders", Label: "Pedidos", Path: "/dashboard/orders",
				Roles:       []string{entity.RoleSales, entity.RoleWarehouseManager},
				Permissions: []string{entity.PermOrdersView},
				Module:      entity.ModuleSales,
			},
			Node{
				Key: "leads", Label: "Leads", Path: "/dashboard/leads",
				Roles:       []string{entity.RoleSales},
				Permissions: []string{entity.PermLeadsManage},
			},
			Node{
				Key: "invoices", Label: "Facturas", Path: "/dashboard/invoices",
				Roles:       []string{entity.RoleSales, entity.RoleAccounts},
				Permissions: []string{entity.PermInvoicesView},
				Module:      entity.ModuleAccounts,
			},
		),
		group("procurement", "Compras", "truck",
			Node{
				Key: "suppliers", Label: "Proveedores", Path: "/dashboard/suppliers",
				Roles:       []string{entity.RoleAccounts},
				Permissions: []string{entity.PermSuppliersManage},
				Module:      entity.ModuleProcurement,
			},
			Node{
				Key: "supplier-payments", Label: "Pagos a proveedores", Path: "/dashboard/supplier-payments",
				Roles:       []string{entity.RoleAccounts},
				Permissions: []string{entity.PermSupplierPayments},
			},
		),
		group("warehouse", "Bodegas", "warehouse",
			Node{
				Key: "warehouses", Label: "Bodegas", Path: "/dashboard/warehouses",
				Roles:       []string{entity.RoleWarehouseManager},
				Permissions: []string{entity.PermWarehousesManage},
				Module:      entity.ModuleWarehouse,
			},
			Node{
				Key: "warehouse-managers", Label: "Encargados", Path: "/dashboard/warehouse-managers",
				Permissions: []string{entity.PermWarehouseManagers},
			},
		),
		group("administration", "Administración", "settings",
			Node{
				Key: "users", Label: "Usuarios", Path: "/dashboard/users",
				Roles:       []string{entity.RoleAdmin},
				Permissions: []string{entity.PermUsersManage},
			},
			Node{
				Key: "stats", Label: "Estadísticas", Path: "/dashboard/stats",
				Roles:       []string{entity.RoleAdmin},
				Permissions: []string{entity.PermStatsView},
			},
		),
		{Key: "my-orders", Label: "Mis pedidos", Path: "/account/orders", Icon: "receipt"},
	}
}
