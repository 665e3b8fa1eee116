package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeedStockSummary es la proyección autoritativa del balance actual de un
// tipo de alimento. Existe exactamente una fila por tipo (upsert por
// feed_type) y solo la escribe el ajustador de stock, nunca la capa HTTP.
type FeedStockSummary struct {
	FeedType            string
	QuantityKg          decimal.Decimal // autoritativo; nunca negativo
	QuantityBuckets     decimal.Decimal // derivado: kg / 12.5
	QuantitySacks       decimal.Decimal // derivado: kg / 50
	DailyConsumption    decimal.Decimal // kg/día sobre días con actividad (ventana de 30 días)
	EstimatedFinishDate *time.Time      // nil si la tasa es ~0 o el balance es 0
	DaysRemaining       *int            // redondeado hacia arriba; nil junto con la fecha
	UpdatedAt           time.Time
}
