package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/freshbreeze-api/internal/application/analytics"
	"github.com/jhoicas/freshbreeze-api/internal/application/auth"
	"github.com/jhoicas/freshbreeze-api/internal/application/billing"
	"github.com/jhoicas/freshbreeze-api/internal/application/inventory"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	ProductUC   *usecase.ProductUseCase
	StockSvc    *inventory.StockService
	CategoryUC  *usecase.CategoryUseCase
	OrderUC     *usecase.OrderUseCase
	SupplierUC  *usecase.SupplierUseCase
	LeadUC      *usecase.LeadUseCase
	WarehouseUC *usecase.WarehouseUseCase
	UserUC      *usecase.UserUseCase
	AccessUC    *usecase.AccessUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	PaymentUC   *billing.PaymentUseCase // nil = pasarela no configurada, sin rutas de pago
	DashboardUC *appanalytics.DashboardUseCase

	Modules  moduleChecker // nil = no se verifican módulos
	Sessions Sessions
	Tenants  TenantResolver
	DB       Pinger

	JWTSecret      string
	Version        string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authMW := AuthMiddleware(deps.JWTSecret, deps.Sessions)
	tenantMW := TenantMiddleware(deps.Tenants, DefaultTenantTimeout)
	module := func(name string) fiber.Handler {
		if deps.Modules == nil {
			return func(c *fiber.Ctx) error { return c.Next() }
		}
		return RequireModule(name, deps.Modules)
	}

	api.Get("/health", Health(deps.DB, deps.Version))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	limiter := RateLimit(deps.RateLimitRPS, deps.RateLimitBurst)
	authGroup.Post("/register", limiter, tenantMW, authHandler.Register)
	authGroup.Post("/login", limiter, tenantMW, authHandler.Login)
	authGroup.Post("/logout", authMW, authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)
	authGroup.Put("/me", authMW, authHandler.UpdateMe)

	// Companies (público)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Post("/register", limiter, companyHandler.Register)
	companies.Get("/by-slug/:slug", companyHandler.GetBySlug)

	// Access pipeline
	accessHandler := NewAccessHandler(deps.AccessUC)
	access := api.Group("/access")
	access.Get("/permissions", authMW, accessHandler.Permissions)
	access.Get("/menu", authMW, accessHandler.Menu)
	access.Get("/routes/check", OptionalAuth(deps.JWTSecret, deps.Sessions), accessHandler.CheckRoute)

	// Catálogo: lectura pública por subdominio, escritura protegida
	catalogAdmins := RequireRole(entity.RoleAdmin, entity.RoleWarehouseManager)
	productHandler := NewProductHandler(deps.ProductUC, deps.StockSvc)
	products := api.Group("/products")
	products.Get("/", tenantMW, productHandler.List)
	products.Get("/:id", tenantMW, productHandler.GetByID)
	products.Post("/", authMW, catalogAdmins, productHandler.Create)
	products.Put("/:id", authMW, catalogAdmins, productHandler.Update)
	products.Delete("/:id", authMW, catalogAdmins, productHandler.Delete)
	products.Post("/:id/image", authMW, catalogAdmins, productHandler.UploadImage)
	products.Patch("/:id/stock", authMW, catalogAdmins, productHandler.AdjustStock)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/categories")
	categories.Get("/", tenantMW, categoryHandler.List)
	categories.Post("/", authMW, RequireRole(entity.RoleAdmin), categoryHandler.Create)
	categories.Put("/:id", authMW, RequireRole(entity.RoleAdmin), categoryHandler.Update)
	categories.Delete("/:id", authMW, RequireRole(entity.RoleAdmin), categoryHandler.Delete)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrderUC)
	customer := api.Group("/customer", authMW)
	customer.Get("/orders", orderHandler.MyOrders)
	customer.Get("/orders/:id", orderHandler.MyOrder)

	orders := api.Group("/orders", authMW)
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/", RequireRole(entity.RoleSales), orderHandler.List)
	orders.Get("/:id", orderHandler.Get)
	orders.Patch("/:id/status", RequireRole(entity.RoleSales, entity.RoleWarehouseManager), orderHandler.UpdateStatus)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	// Pagos. El webhook es público: lo autentica la firma.
	if deps.PaymentUC != nil {
		paymentHandler := NewPaymentHandler(deps.PaymentUC)
		api.Post("/payments/webhook", paymentHandler.Webhook)
		payments := api.Group("/payments", authMW)
		payments.Post("/intent", paymentHandler.CreateIntent)
		payments.Get("/order/:id", paymentHandler.ListByOrder)
	}

	// Compras
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers", authMW, RequireRole(entity.RoleAccounts), module(entity.ModuleProcurement))
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	supplierPayments := api.Group("/supplier-payments", authMW, RequireRole(entity.RoleAccounts), module(entity.ModuleProcurement))
	supplierPayments.Post("/", supplierHandler.RegisterPayment)
	supplierPayments.Get("/", supplierHandler.ListPayments)
	supplierPayments.Get("/supplier/:id", supplierHandler.ListPayments)

	// Ventas
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads := api.Group("/leads", authMW, RequireRole(entity.RoleSales), module(entity.ModuleSales))
	leads.Post("/", leadHandler.Create)
	leads.Get("/", leadHandler.List)
	leads.Get("/:id", leadHandler.Get)
	leads.Put("/:id", leadHandler.Update)
	leads.Patch("/:id/status", leadHandler.UpdateStatus)
	leads.Delete("/:id", leadHandler.Delete)

	// Facturación
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices := api.Group("/invoices", authMW, RequireRole(entity.RoleAccounts, entity.RoleSales), module(entity.ModuleAccounts))
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Bodegas
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	managers := api.Group("/warehouse-managers", authMW, RequireRole(entity.RoleAdmin), module(entity.ModuleWarehouse))
	managers.Post("/", warehouseHandler.AssignManager)
	managers.Get("/", warehouseHandler.ListManagers)
	managers.Delete("/:id", warehouseHandler.RemoveManager)

	warehouses := api.Group("/warehouses", authMW, RequireRole(entity.RoleWarehouseManager), module(entity.ModuleWarehouse))
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)

	// Administración
	adminHandler := NewAdminHandler(deps.DashboardUC, deps.UserUC)
	admin := api.Group("/admin", authMW, RequireRole(entity.RoleAdmin))
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.Users)
	admin.Put("/users/:id/roles", adminHandler.UpdateRoles)
}
