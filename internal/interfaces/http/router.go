package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Granja-api/internal/application/feed"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ConsumptionUC *feed.ConsumptionUseCase
	StockUC       *feed.StockUseCase
	ReportUC      *feed.ReportUseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el ledger de alimento queda
// detrás del Bearer Token; /health se registra aparte en main.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/feed", AuthMiddleware(deps.JWTSecret))

	// Consumos de alimento
	consumption := protected.Group("/consumption")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	consumption.Post("/", consumptionHandler.Create)
	consumption.Get("/", consumptionHandler.List)
	consumption.Put("/:id", consumptionHandler.Update)
	consumption.Delete("/:id", consumptionHandler.Delete)

	// Resumen de stock
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.ReportUC)
	stock.Get("/", stockHandler.GetSummary)
	stock.Get("/trend", stockHandler.GetTrend)
	stock.Get("/report", stockHandler.Report)
	stock.Post("/adjust", stockHandler.Adjust)
	stock.Get("/:feedType/available", stockHandler.GetAvailable)
}
