package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hawlader/taller-api/internal/application/analytics"
	"github.com/hawlader/taller-api/internal/application/auth"
	"github.com/hawlader/taller-api/internal/application/billing"
	"github.com/hawlader/taller-api/internal/application/catalog"
	"github.com/hawlader/taller-api/internal/application/exporting"
	"github.com/hawlader/taller-api/internal/application/orders"
	"github.com/hawlader/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrdersUC    *orders.UseCase
	ProductUC   *catalog.ProductUseCase
	ClientUC    *catalog.ClientUseCase
	CompanyUC   *catalog.CompanyUseCase
	Assembler   *billing.Assembler
	DashboardUC *analytics.DashboardUseCase
	Exporter    *exporting.Exporter
	AuthUC      *auth.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Entradas (protegido)
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.OrdersUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/falta", entryHandler.ListFalta)
	entries.Post("/recompute-statuses", entryHandler.Recompute)
	entries.Get("/:code", entryHandler.Get)
	entries.Put("/:code", entryHandler.Update)
	entries.Patch("/:code/status", entryHandler.UpdateStatus)
	entries.Delete("/:code", entryHandler.Delete)
	entries.Delete("/", entryHandler.DeleteMany)

	// Entregas (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.OrdersUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)

	// Catálogo de productos (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:code", productHandler.Get)
	products.Put("/:code", productHandler.Update)
	products.Delete("/:code", productHandler.Delete)
	products.Delete("/", productHandler.DeleteMany)

	// Clientes (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Delete("/", clientHandler.DeleteMany)

	// Empresa emisora (protegido)
	company := protected.Group("/company")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company.Get("/", companyHandler.Get)
	company.Put("/", companyHandler.Save)

	// Documentos de facturación (protegido)
	documents := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.Assembler)
	exportHandler := NewExportHandler(deps.Exporter)
	documents.Get("/invoiceable", documentHandler.ListInvoiceable)
	documents.Get("/next-number", documentHandler.NextNumber)
	documents.Post("/draft", documentHandler.CreateDraft)
	documents.Post("/", documentHandler.Save)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.Get)
	documents.Get("/:id/pdf", exportHandler.DocumentPDF)
	documents.Get("/:id/xml", exportHandler.DocumentXML)
	documents.Delete("/:id", documentHandler.Delete)
	documents.Delete("/", documentHandler.DeleteMany)

	// Panel y exportación (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
	protected.Get("/export/entries.csv", exportHandler.EntriesCSV)
	protected.Get("/export/documents.csv", exportHandler.DocumentsCSV)

	// Administración de usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", authHandler.ListUsers)
	users.Patch("/:id/role", authHandler.UpdateRole)
	users.Delete("/:id", authHandler.DeleteUser)
}
