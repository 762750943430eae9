package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/facturacion-pos-api/internal/application/analytics"
	"github.com/jhoicas/facturacion-pos-api/internal/application/billing"
	"github.com/jhoicas/facturacion-pos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	BankDetailUC *usecase.BankDetailUseCase
	ProductUC    *usecase.ProductUseCase
	CustomerUC   *billing.CustomerUseCase
	InvoiceUC    *billing.InvoiceUseCase
	DashboardUC  *appanalytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Perfiles de negocio
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	// Recursos de una empresa: /api/companies/:companyId/...
	scoped := companies.Group("/:companyId", CompanyScope(deps.CompanyUC))

	customers := scoped.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	banks := scoped.Group("/bank-details")
	bankHandler := NewBankDetailHandler(deps.BankDetailUC)
	banks.Post("/", bankHandler.Create)
	banks.Get("/", bankHandler.List)
	banks.Get("/:id", bankHandler.GetByID)
	banks.Put("/:id", bankHandler.Update)
	banks.Post("/:id/default", bankHandler.SetDefault)
	banks.Delete("/:id", bankHandler.Delete)

	products := scoped.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Facturación. /calculate va antes de /:id.
	invoices := scoped.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/calculate", invoiceHandler.Calculate)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id/status", invoiceHandler.ChangeStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Resumen de ventas (solo lectura)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	scoped.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
