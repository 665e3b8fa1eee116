package dto

import "github.com/shopspring/decimal"

// CreateConsumptionRequest body para POST /api/feed/consumption.
// consumption_date en formato YYYY-MM-DD.
type CreateConsumptionRequest struct {
	Batch           string          `json:"batch"`
	FeedType        string          `json:"feed_type"`
	FeedName        string          `json:"feed_name"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
	Unit            string          `json:"unit"`
	ConsumptionDate string          `json:"consumption_date"`
}

// UpdateConsumptionRequest body para PUT /api/feed/consumption/:id.
// Solo los campos presentes se modifican.
type UpdateConsumptionRequest struct {
	Batch           *string          `json:"batch,omitempty"`
	FeedType        *string          `json:"feed_type,omitempty"`
	FeedName        *string          `json:"feed_name,omitempty"`
	QuantityUsed    *decimal.Decimal `json:"quantity_used,omitempty"`
	Unit            *string          `json:"unit,omitempty"`
	ConsumptionDate *string          `json:"consumption_date,omitempty"`
}

// ConsumptionResponse un registro de consumo en respuestas de listado.
type ConsumptionResponse struct {
	ID              int64           `json:"id"`
	Batch           string          `json:"batch"`
	FeedType        string          `json:"feed_type"`
	FeedName        string          `json:"feed_name"`
	QuantityUsed    decimal.Decimal `json:"quantity_used"`
	Unit            string          `json:"unit"`
	ConsumptionDate string          `json:"consumption_date"`
}

// FeedStockSummaryResponse una fila del resumen de stock por tipo.
type FeedStockSummaryResponse struct {
	FeedType            string          `json:"feed_type"`
	QuantityKg          decimal.Decimal `json:"quantity_kg"`
	QuantityBuckets     decimal.Decimal `json:"quantity_buckets"`
	QuantitySacks       decimal.Decimal `json:"quantity_sacks"`
	DailyConsumption    decimal.Decimal `json:"daily_consumption"` // kg/día
	EstimatedFinishDate *string         `json:"estimated_finish_date"`
	DaysRemaining       *int            `json:"days_remaining"`
}

// DailyConsumptionPoint un día con actividad dentro de la tendencia.
type DailyConsumptionPoint struct {
	Date             string          `json:"date"` // YYYY-MM-DD
	TotalConsumption decimal.Decimal `json:"total_consumption"`
}

// AdjustStockRequest body para POST /api/feed/stock/adjust (contrato con el
// ingreso de compras: delta positivo suma stock, negativo lo descuenta).
type AdjustStockRequest struct {
	FeedType string          `json:"feed_type"`
	DeltaKg  decimal.Decimal `json:"delta_kg"`
}
