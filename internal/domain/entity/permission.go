package entity

// Códigos de permiso. Se conceden por rol en role_permissions y se consultan con
// get_user_permissions(user, company).
const (
	PermProductsView      = "products.view"
	PermProductsManage    = "products.manage"
	PermCategoriesManage  = "categories.manage"
	PermInventoryAdjust   = "inventory.adjust"
	PermOrdersView        = "orders.view"
	PermOrdersManage      = "orders.manage"
	PermLeadsManage       = "leads.manage"
	PermInvoicesView      = "invoices.view"
	PermInvoicesManage    = "invoices.manage"
	PermSuppliersManage   = "suppliers.manage"
	PermSupplierPayments  = "supplier_payments.manage"
	PermWarehousesManage  = "warehouses.manage"
	PermWarehouseManagers = "warehouse_managers.manage"
	PermUsersManage       = "users.manage"
	PermStatsView         = "stats.view"
)

// Permission permiso concedido a un usuario dentro de una empresa.
type Permission struct {
	Code   string
	Module string
	Action string
}
