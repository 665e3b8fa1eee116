// Package feed contiene la lógica pura de conversión de unidades del
// inventario de alimento. Sin estado ni efectos secundarios.
package feed

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// Equivalencias fijas de las unidades de compra/consumo.
var (
	KgPerBucket = decimal.NewFromFloat(12.5)
	KgPerSack   = decimal.NewFromInt(50)
)

// ToKilograms convierte una cantidad en la unidad dada a kilogramos.
// Una unidad fuera del catálogo devuelve la cantidad sin convertir; las
// capas de entrada validan la unidad con entity.ValidUnit antes de llegar
// aquí, así que el fallback solo aplica a datos históricos irregulares.
func ToKilograms(q decimal.Decimal, unit string) decimal.Decimal {
	switch unit {
	case entity.UnitBucket:
		return q.Mul(KgPerBucket)
	case entity.UnitSack:
		return q.Mul(KgPerSack)
	default: // entity.UnitKg y unidades no reconocidas
		return q
	}
}

// BucketsFromKg devuelve el equivalente en baldes de un peso en kilogramos.
func BucketsFromKg(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(KgPerBucket)
}

// SacksFromKg devuelve el equivalente en bultos de un peso en kilogramos.
func SacksFromKg(kg decimal.Decimal) decimal.Decimal {
	return kg.Div(KgPerSack)
}
