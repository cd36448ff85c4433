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

	"github.com/hawlader/taller-api/internal/application/analytics"
	"github.com/hawlader/taller-api/internal/application/auth"
	"github.com/hawlader/taller-api/internal/application/billing"
	"github.com/hawlader/taller-api/internal/application/catalog"
	"github.com/hawlader/taller-api/internal/application/exporting"
	"github.com/hawlader/taller-api/internal/application/orders"
	"github.com/hawlader/taller-api/internal/infrastructure/einvoice"
	infrapdf "github.com/hawlader/taller-api/internal/infrastructure/pdf"
	"github.com/hawlader/taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/hawlader/taller-api/internal/interfaces/http"
	"github.com/hawlader/taller-api/pkg/config"
	"github.com/hawlader/taller-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	entryRepo := postgres.NewEntryRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ordersUC := orders.NewUseCase(txRunner, entryRepo, deliveryRepo, productRepo, clientRepo)
	productUC := catalog.NewProductUseCase(productRepo, clientRepo, entryRepo)
	clientUC := catalog.NewClientUseCase(clientRepo)
	companyUC := catalog.NewCompanyUseCase(companyRepo)
	assembler := billing.NewAssembler(txRunner, documentRepo, entryRepo, deliveryRepo, clientRepo)
	dashboardUC := analytics.NewDashboardUseCase(entryRepo, deliveryRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	pdfGenerator := infrapdf.NewDocumentGenerator()
	xmlBuilder := einvoice.NewXMLBuilder()
	exporter := exporting.NewExporter(
		documentRepo, entryRepo, deliveryRepo, companyRepo, clientRepo,
		pdfGenerator, xmlBuilder,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrdersUC:    ordersUC,
		ProductUC:   productUC,
		ClientUC:    clientUC,
		CompanyUC:   companyUC,
		Assembler:   assembler,
		DashboardUC: dashboardUC,
		Exporter:    exporter,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
