package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP del resumen de stock (protegido).
type StockHandler struct {
	stock  *feed.StockUseCase
	report *feed.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *feed.StockUseCase, report *feed.ReportUseCase) *StockHandler {
	return &StockHandler{stock: stock, report: report}
}

func toSummaryResponse(s *entity.FeedStockSummary) dto.FeedStockSummaryResponse {
	out := dto.FeedStockSummaryResponse{
		FeedType:         s.FeedType,
		QuantityKg:       s.QuantityKg,
		QuantityBuckets:  s.QuantityBuckets,
		QuantitySacks:    s.QuantitySacks,
		DailyConsumption: s.DailyConsumption,
		DaysRemaining:    s.DaysRemaining,
	}
	if s.EstimatedFinishDate != nil {
		finish := s.EstimatedFinishDate.Format(dateLayout)
		out.EstimatedFinishDate = &finish
	}
	return out
}

// GetSummary godoc
// @Summary      Resumen de stock por tipo de alimento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FeedStockSummaryResponse
// @Router       /api/feed/stock [get]
func (h *StockHandler) GetSummary(c *fiber.Ctx) error {
	summaries, err := h.stock.GetSummary(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.FeedStockSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toSummaryResponse(s))
	}
	return c.JSON(out)
}

// GetAvailable godoc
// @Summary      Balance disponible de un tipo de alimento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        feedType  path  string  true  "B0 | B1 | B2"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feed/stock/{feedType}/available [get]
func (h *StockHandler) GetAvailable(c *fiber.Ctx) error {
	feedType := c.Params("feedType")
	kg, err := h.stock.GetAvailableStock(c.Context(), feedType)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"feed_type": feedType, "available_kg": kg})
}

// GetTrend godoc
// @Summary      Tendencia de consumo diario
// @Description  Consumo total en kg por día con actividad, sobre los últimos `days` días (30 por defecto).
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        feed_type  query  string  true   "B0 | B1 | B2"
// @Param        days       query  int     false  "ventana en días"
// @Success      200  {array}   dto.DailyConsumptionPoint
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feed/stock/trend [get]
func (h *StockHandler) GetTrend(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	trend, err := h.stock.GetDailyConsumptionTrend(c.Context(), c.Query("feed_type"), days)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(trend), "trend": trend})
}

// Adjust godoc
// @Summary      Ajustar el balance de un tipo de alimento
// @Description  Contrato con el ingreso de compras: delta positivo suma stock, negativo lo descuenta (truncado en cero).
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "feed_type, delta_kg"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/feed/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ref, err := h.stock.Adjust(c.Context(), in.FeedType, in.DeltaKg)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"reference": ref})
}

// Report godoc
// @Summary      Informe PDF del stock de alimento
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/feed/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.report.GenerateStockReport(c.Context())
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-alimento.pdf"`)
	return c.Send(pdfBytes)
}
