package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"github.com/jhoicas/freshbreeze-api/internal/access"
	appanalytics "github.com/jhoicas/freshbreeze-api/internal/application/analytics"
	"github.com/jhoicas/freshbreeze-api/internal/application/auth"
	"github.com/jhoicas/freshbreeze-api/internal/application/billing"
	"github.com/jhoicas/freshbreeze-api/internal/application/inventory"
	"github.com/jhoicas/freshbreeze-api/internal/application/usecase"
	"github.com/jhoicas/freshbreeze-api/internal/guard"
	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/cache"
	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/freshbreeze-api/internal/infrastructure/pdf"
	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/postgres"
	"github.com/jhoicas/freshbreeze-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/freshbreeze-api/internal/interfaces/http"
	"github.com/jhoicas/freshbreeze-api/internal/menu"
	"github.com/jhoicas/freshbreeze-api/internal/session"
	"github.com/jhoicas/freshbreeze-api/internal/tenant"
	"github.com/jhoicas/freshbreeze-api/pkg/config"
	"github.com/jhoicas/freshbreeze-api/pkg/logger"
)

// permissionsTTL vigencia de permisos y módulos cacheados por usuario.
const permissionsTTL = 5 * time.Minute

func newServeCommand() *cobra.Command {
	var migrateFirst bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			if migrateFirst {
				m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
				if err != nil {
					return err
				}
				err = m.Up()
				_ = m.Close()
				if err != nil {
					return err
				}
			}
			return serve(cmd.Context(), cfg, log)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "aplicar migraciones pendientes antes de arrancar")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", version).
		Msg("iniciando aplicación")

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		return err
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	supplierPaymentRepo := postgres.NewSupplierPaymentRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	managerRepo := postgres.NewWarehouseManagerRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cachés compartidas: Redis si está configurado, si no memoria del proceso.
	var (
		slugCache   tenant.Cache
		revocations session.Revocations
	)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
			return err
		}
		defer client.Close()
		slugCache = cache.NewRedisSlugCache(client, cache.SlugTTL)
		revocations = cache.NewRedisRevocations(client)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: cachés en memoria del proceso")
		slugCache = cache.NewMemorySlugCache(cache.SlugTTL)
		revocations = cache.NewMemoryRevocations()
	}

	resolver := tenant.NewResolver(companyRepo, slugCache, tenant.Config{
		RootDomain:  cfg.Tenant.RootDomain,
		DefaultSlug: cfg.Tenant.DefaultSlug,
	}, log.Component("tenant"))
	fetcher := access.NewFetcher(permissionRepo, permissionsTTL, log.Component("access"))
	sessions := session.NewStore(fetcher, fetcher, revocations, time.Duration(cfg.JWT.Expiration)*time.Minute)

	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("almacenamiento de imágenes")
		return err
	}

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, sessions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, orderRepo, log.Component("billing"))
	pdfUC := billing.NewPDFUseCase(invoiceRepo, companyRepo, orderRepo, infrapdf.NewMarotoPDFGenerator())

	// Pagos: sin clave de Stripe las rutas de pago no se registran.
	var paymentUC *billing.PaymentUseCase
	if cfg.Stripe.SecretKey != "" {
		gateway, err := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
		if err != nil {
			log.Error().Err(err).Msg("pasarela de pagos")
			return err
		}
		paymentUC = billing.NewPaymentUseCase(orderRepo, paymentRepo, invoiceRepo, txRunner, gateway, cfg.Stripe.Currency, log.Component("payments"))
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY vacío: pagos deshabilitados")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fresh Breeze Basket API",
	}))

	if cfg.Storage.Driver == "" || cfg.Storage.Driver == "local" {
		uploads := cfg.Storage.UploadsPath
		if uploads == "" {
			uploads = "./uploads"
		}
		app.Static("/uploads", uploads)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   usecase.NewCompanyUseCase(companyRepo, txRunner, authUC),
		ProductUC:   usecase.NewProductUseCase(productRepo, categoryRepo, objects),
		StockSvc:    inventory.NewStockService(productRepo, log.Component("inventory")),
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo),
		OrderUC:     usecase.NewOrderUseCase(orderRepo, txRunner, log.Component("orders")),
		SupplierUC:  usecase.NewSupplierUseCase(supplierRepo, supplierPaymentRepo),
		LeadUC:      usecase.NewLeadUseCase(leadRepo, userRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo, managerRepo, userRepo),
		UserUC:      usecase.NewUserUseCase(userRepo, sessions),
		AccessUC:    usecase.NewAccessUseCase(userRepo, menu.Default(), guard.DefaultRoutes()),
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		PaymentUC:   paymentUC,
		DashboardUC: appanalytics.NewDashboardUseCase(orderRepo, productRepo, leadRepo),
		Modules:     usecase.NewModuleService(companyRepo),
		Sessions:    sessions,
		Tenants:     resolver,
		DB:          pool,

		JWTSecret:      cfg.JWT.Secret,
		Version:        version,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
