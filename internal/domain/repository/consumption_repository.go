package repository

import (
	"time"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
)

// ConsumptionFilter filtros para listar consumos. Los campos en cero no filtran.
type ConsumptionFilter struct {
	Batch    string
	FeedType string
	From     *time.Time
	To       *time.Time
}

// ConsumptionRepository acceso a los registros de consumo de alimento.
// Las implementaciones van atadas a un pool o a una transacción (ver TxRunner).
type ConsumptionRepository interface {
	// Create persiste el registro y asigna su ID.
	Create(e *entity.ConsumptionEntry) error
	// GetByID devuelve nil, nil si el registro no existe.
	GetByID(id int64) (*entity.ConsumptionEntry, error)
	Update(e *entity.ConsumptionEntry) error
	Delete(id int64) error
	// List devuelve los consumos que cumplen el filtro, ordenados por
	// fecha de consumo descendente.
	List(filter ConsumptionFilter) ([]*entity.ConsumptionEntry, error)
	// ListByFeedTypeSince devuelve el historial de un tipo de alimento desde
	// una fecha (inclusive). Alimenta el cálculo de la tasa diaria.
	ListByFeedTypeSince(feedType string, since time.Time) ([]*entity.ConsumptionEntry, error)
}
