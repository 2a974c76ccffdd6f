package main

import (
	"log"
	"strings"

	"insaat-backend/internal/allocation"
	"insaat-backend/internal/analytics"
	"insaat-backend/internal/auth"
	"insaat-backend/internal/category"
	"insaat-backend/internal/company"
	"insaat-backend/internal/config"
	"insaat-backend/internal/database"
	"insaat-backend/internal/ledger"
	"insaat-backend/internal/project"
	"insaat-backend/internal/stock"
	"insaat-backend/internal/trash"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Cari yönetimi
	protected.Post("/companies", company.CreateCompanyHandler())
	protected.Get("/companies", company.ListCompaniesHandler())
	protected.Get("/companies/:id", company.GetCompanyHandler())
	protected.Put("/companies/:id", company.UpdateCompanyHandler())
	protected.Delete("/companies/:id", company.DeleteCompanyHandler())

	// Proje yönetimi
	protected.Post("/projects", project.CreateProjectHandler())
	protected.Get("/projects", project.ListProjectsHandler())
	protected.Get("/projects/:id", project.GetProjectHandler())
	protected.Put("/projects/:id", project.UpdateProjectHandler())
	protected.Delete("/projects/:id", project.DeleteProjectHandler())

	// Kategoriler
	protected.Post("/categories", category.CreateCategoryHandler())
	protected.Get("/categories", category.ListCategoriesHandler())
	protected.Put("/categories/:id", category.UpdateCategoryHandler())
	protected.Delete("/categories/:id", category.DeleteCategoryHandler())

	// İşlem defteri
	protected.Post("/transactions", ledger.CreateTransactionHandler())
	protected.Get("/transactions", ledger.ListTransactionsHandler())
	protected.Get("/transactions/recent", ledger.RecentTransactionsHandler())
	protected.Put("/transactions/:id", ledger.UpdateTransactionHandler())
	protected.Delete("/transactions/:id", ledger.DeleteTransactionHandler())

	// Ödeme-fatura bağlantıları
	protected.Get("/allocations/payment/:id", allocation.GetForPaymentHandler())
	protected.Get("/allocations/invoice/:id", allocation.GetForInvoiceHandler())
	protected.Get("/allocations/open-invoices", allocation.OpenInvoicesHandler())
	protected.Put("/allocations/payment/:id", allocation.SetForPaymentHandler())
	protected.Delete("/allocations/payment/:id", allocation.DeleteForPaymentHandler())

	// Çöp kutusu
	protected.Get("/trash", trash.ListTrashHandler())
	protected.Post("/trash/:id/restore", trash.RestoreHandler())
	protected.Delete("/trash/:id", trash.PermanentDeleteHandler())
	protected.Delete("/trash", trash.EmptyTrashHandler())

	// Malzeme & stok
	protected.Post("/materials", stock.CreateMaterialHandler())
	protected.Get("/materials", stock.ListMaterialsHandler())
	protected.Put("/materials/:id", stock.UpdateMaterialHandler())
	protected.Delete("/materials/:id", stock.DeleteMaterialHandler())
	protected.Post("/stock-movements", stock.CreateMovementHandler())
	protected.Get("/stock-movements", stock.ListMovementsHandler())
	protected.Delete("/stock-movements/:id", stock.DeleteMovementHandler())

	// Raporlar
	protected.Get("/analytics/dashboard", analytics.DashboardStatsHandler())
	protected.Get("/analytics/top-debtors", analytics.TopDebtorsHandler())
	protected.Get("/analytics/top-creditors", analytics.TopCreditorsHandler())
	protected.Get("/analytics/monthly", analytics.MonthlyStatsHandler())
	protected.Get("/analytics/cash-flow", analytics.CashFlowHandler())
	protected.Get("/analytics/aging-receivables", analytics.AgingReceivablesHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
