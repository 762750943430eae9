package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appanalytics "github.com/jhoicas/facturacion-pos-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-pos-api/internal/application/billing"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/facturacion-pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/facturacion-pos-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-pos-api/pkg/config"
	"github.com/jhoicas/facturacion-pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	bankRepo := postgres.NewBankDetailRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Métricas de negocio: sin Prometheus el caso de uso recibe un recorder nil.
	var recorder billing.Recorder
	var httpMetrics *metrics.HTTPMetrics
	if cfg.Metrics.Enabled {
		recorder = metrics.NewInvoiceMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
		httpMetrics = metrics.NewHTTPMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	}

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	bankDetailUC := usecase.NewBankDetailUseCase(bankRepo, txRunner)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, companyRepo, customerRepo, productRepo, bankRepo, invoiceRepo, recorder,
	)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	if httpMetrics != nil {
		app.Use(httpRouter.Metrics(httpMetrics))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.DocsPath != "" {
		if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.DocsPath,
				Path:     "docs",
				Title:    "Facturación POS API",
			}))
		} else {
			log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:    companyUC,
		BankDetailUC: bankDetailUC,
		ProductUC:    productUC,
		CustomerUC:   customerUC,
		InvoiceUC:    invoiceUC,
		DashboardUC:  dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
