package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// InsufficientStockError detalla un rechazo por stock insuficiente: cuánto
// hay disponible y cuánto requería la operación, en kilogramos. El monto
// requerido ya viene convertido a kg desde la unidad original.
type InsufficientStockError struct {
	FeedType    string
	AvailableKg decimal.Decimal
	RequiredKg  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %s kg, requerido %s kg",
		e.FeedType, e.AvailableKg.String(), e.RequiredKg.String())
}

// Is permite errors.Is(err, ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
