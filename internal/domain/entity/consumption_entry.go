package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de alimento (etapas de formulación avícola).
const (
	FeedTypeB0 = "B0" // iniciador
	FeedTypeB1 = "B1" // crecimiento
	FeedTypeB2 = "B2" // ponedora
)

// Unidades aceptadas al registrar compras y consumos de alimento.
const (
	UnitKg     = "kg"
	UnitBucket = "bucket" // balde de 12.5 kg
	UnitSack   = "sack"   // bulto de 50 kg
)

// FeedTypes catálogo cerrado de tipos de alimento, en orden estable para reportes.
var FeedTypes = []string{FeedTypeB0, FeedTypeB1, FeedTypeB2}

// ValidFeedType indica si el tipo pertenece al catálogo cerrado.
func ValidFeedType(ft string) bool {
	return ft == FeedTypeB0 || ft == FeedTypeB1 || ft == FeedTypeB2
}

// ValidUnit indica si la unidad pertenece al catálogo cerrado.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitBucket || u == UnitSack
}

// ConsumptionEntry representa un retiro de alimento del inventario para un
// lote en una fecha dada. Estos registros son la fuente de verdad del
// historial; feed_stock_summary se deriva de ellos.
type ConsumptionEntry struct {
	ID              int64
	Batch           string
	FeedType        string
	FeedName        string
	Quantity        decimal.Decimal // en la unidad indicada en Unit
	Unit            string
	ConsumptionDate time.Time // solo fecha, sin componente horario
	CreatedAt       time.Time
	CreatedBy       string
}
