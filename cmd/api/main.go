package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/almacen-api/docs"
	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/infrastructure/export"
	"github.com/jhoicas/almacen-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	"github.com/jhoicas/almacen-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/almacen-api/internal/interfaces/http"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// @title                       Almacén API
// @version                     1.0
// @description                 Productos, entradas y salidas de mercancía con saldo consistente.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.Migrations.AutoMigrate {
		migrator, err := postgres.NewMigrator(pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if err := migrator.Up(ctx); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		version, err := migrator.Version(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("leer versión del esquema")
		} else {
			log.Info().Int64("version", version).Msg("esquema al día")
		}
		if err := migrator.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	stockInRepo := postgres.NewStockInRepository(pool)
	stockOutRepo := postgres.NewStockOutRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	var metricsHandler fiber.Handler
	engineOpts := []inventory.Option{}
	if cfg.Metrics.Enabled {
		reg := metrics.NewRegistry()
		engineOpts = append(engineOpts, inventory.WithRecorder(reg))
		metricsHandler = reg.Handler()
	}
	engine := inventory.NewEngine(txRunner, engineOpts...)

	productUC := usecase.NewProductUseCase(productRepo, engine)
	movementUC := usecase.NewMovementUseCase(engine, stockInRepo, stockOutRepo, nil)
	reportUC := reports.NewReportUseCase(
		reportRepo, stockInRepo, stockOutRepo,
		infrapdf.NewDailyReportPDF(cfg.App.Name), export.NewMovementsXLSX(),
	)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		ProductUC:  productUC,
		MovementUC: movementUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		DB:         pool,
		Metrics:    metricsHandler,
		JWTSecret:  cfg.JWT.Secret,
		Service:    cfg.App.Name,
		Log:        log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Almacén API",
	}))

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
