package repository

import "github.com/jhoicas/Granja-api/internal/domain/entity"

// FeedStockRepository acceso a la fila de resumen por tipo de alimento.
type FeedStockRepository interface {
	// Get devuelve el resumen del tipo; si no hay fila, un resumen en cero.
	Get(feedType string) (*entity.FeedStockSummary, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT ... FOR UPDATE)
	// dentro de la transacción actual.
	GetForUpdate(feedType string) (*entity.FeedStockSummary, error)
	// Upsert inserta o actualiza el resumen con clave feed_type.
	Upsert(s *entity.FeedStockSummary) error
	// List devuelve todas las filas de resumen ordenadas por tipo.
	List() ([]*entity.FeedStockSummary, error)
}
