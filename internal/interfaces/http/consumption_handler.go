package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/application/feed"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ConsumptionHandler maneja las peticiones HTTP de consumo de alimento (protegido).
type ConsumptionHandler struct {
	uc *feed.ConsumptionUseCase
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *feed.ConsumptionUseCase) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc}
}

// respondDomainError mapea errores de dominio a estados HTTP. El caso de
// stock insuficiente incluye disponible/requerido para la pantalla.
func respondDomainError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:        "INSUFFICIENT_STOCK",
			Message:     "stock insuficiente",
			FeedType:    insufficient.FeedType,
			AvailableKg: insufficient.AvailableKg,
			RequiredKg:  insufficient.RequiredKg,
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro de consumo no encontrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func toConsumptionResponse(e *entity.ConsumptionEntry) dto.ConsumptionResponse {
	return dto.ConsumptionResponse{
		ID:              e.ID,
		Batch:           e.Batch,
		FeedType:        e.FeedType,
		FeedName:        e.FeedName,
		QuantityUsed:    e.Quantity,
		Unit:            e.Unit,
		ConsumptionDate: e.ConsumptionDate.Format(dateLayout),
	}
}

// Create godoc
// @Summary      Registrar consumo de alimento
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumptionRequest  true  "batch, feed_type (B0|B1|B2), feed_name, quantity_used, unit (kg|bucket|sack), consumption_date (YYYY-MM-DD)"
// @Success      201   {object}  map[string]int64
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/feed/consumption [post]
func (h *ConsumptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := time.Parse(dateLayout, in.ConsumptionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consumption_date debe ser YYYY-MM-DD"})
	}
	id, err := h.uc.Create(c.Context(), feed.ConsumptionInput{
		Batch:           in.Batch,
		FeedType:        in.FeedType,
		FeedName:        in.FeedName,
		Quantity:        in.QuantityUsed,
		Unit:            in.Unit,
		ConsumptionDate: date,
		CreatedBy:       GetUserID(c),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// List godoc
// @Summary      Listar consumos de alimento
// @Description  Filtros opcionales: batch, feed_type, from/to (YYYY-MM-DD).
// @Tags         feed
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ConsumptionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/feed/consumption [get]
func (h *ConsumptionHandler) List(c *fiber.Ctx) error {
	var (
		entries []*entity.ConsumptionEntry
		err     error
	)
	switch {
	case c.Query("batch") != "":
		entries, err = h.uc.ListByBatch(c.Context(), c.Query("batch"))
	case c.Query("feed_type") != "":
		entries, err = h.uc.ListByFeedType(c.Context(), c.Query("feed_type"))
	case c.Query("from") != "" || c.Query("to") != "":
		var from, to time.Time
		from, err = time.Parse(dateLayout, c.Query("from"))
		if err == nil {
			to, err = time.Parse(dateLayout, c.Query("to"))
		}
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from y to deben ser YYYY-MM-DD"})
		}
		entries, err = h.uc.ListByDateRange(c.Context(), from, to)
	default:
		entries, err = h.uc.List(c.Context())
	}
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.ConsumptionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toConsumptionResponse(e))
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// Update godoc
// @Summary      Editar un consumo de alimento
// @Description  Parche por campos; el delta en kg se reconcilia contra el stock en la misma transacción.
// @Tags         feed
// @Security     Bearer
// @Accept       json
// @Param        id    path  int  true  "ID del consumo"
// @Param        body  body  dto.UpdateConsumptionRequest  true  "campos a modificar"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/feed/consumption/{id} [put]
func (h *ConsumptionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	patch := feed.ConsumptionPatch{
		Batch:    in.Batch,
		FeedType: in.FeedType,
		FeedName: in.FeedName,
		Quantity: in.QuantityUsed,
		Unit:     in.Unit,
	}
	if in.ConsumptionDate != nil {
		date, err := time.Parse(dateLayout, *in.ConsumptionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "consumption_date debe ser YYYY-MM-DD"})
		}
		patch.ConsumptionDate = &date
	}
	if err := h.uc.Update(c.Context(), int64(id), patch); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar un consumo de alimento
// @Description  Elimina el registro y devuelve sus kilogramos al balance del tipo.
// @Tags         feed
// @Security     Bearer
// @Param        id  path  int  true  "ID del consumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/feed/consumption/{id} [delete]
func (h *ConsumptionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), int64(id)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
