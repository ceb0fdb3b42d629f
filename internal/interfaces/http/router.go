package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *usecase.MovementUseCase
	ReportUC   *reports.ReportUseCase
	AuthUC     *auth.AuthUseCase
	DB         Pinger        // nil = /health sin verificación de BD
	Metrics    fiber.Handler // nil = /metrics deshabilitado
	JWTSecret  string
	Service    string
	Log        *logger.Logger
}

// NewApp crea la aplicación Fiber con los middlewares comunes (recover, request-id, log)
// y registra todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.Service,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Log.Component("http")))
	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", NewHealthHandler(deps.Service, deps.DB).Health)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics)
	}

	api := app.Group("/api")

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", NoStore(), productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Entradas y salidas
	movementHandler := NewMovementHandler(deps.MovementUC)
	stockIn := protected.Group("/stock-in")
	stockIn.Post("/", movementHandler.CreateStockIn)
	stockIn.Get("/", NoStore(), movementHandler.ListStockIn)
	stockIn.Get("/:id", movementHandler.GetStockIn)
	stockIn.Put("/:id", movementHandler.UpdateStockIn)
	stockIn.Delete("/:id", movementHandler.DeleteStockIn)

	stockOut := protected.Group("/stock-out")
	stockOut.Post("/", movementHandler.CreateStockOut)
	stockOut.Get("/", NoStore(), movementHandler.ListStockOut)
	stockOut.Get("/:id", movementHandler.GetStockOut)
	stockOut.Put("/:id", movementHandler.UpdateStockOut)
	stockOut.Delete("/:id", movementHandler.DeleteStockOut)

	// Reportes (solo lectura)
	rep := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	rep.Get("/dashboard", NoStore(), reportHandler.Dashboard)
	rep.Get("/daily", reportHandler.Daily)
	rep.Get("/daily.pdf", reportHandler.DailyPDF)
	rep.Get("/movements.xlsx", reportHandler.MovementsXLSX)
	rep.Get("/consistency", NoStore(), reportHandler.Consistency)
}
