package feed

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la verificación de stock, la
// escritura del consumo y el ajuste del resumen sean un todo atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		consRepo repository.ConsumptionRepository,
		stockRepo repository.FeedStockRepository,
	) error) error
}

// StockReportGenerator genera el PDF del informe de stock de alimento.
type StockReportGenerator interface {
	GenerateStockReport(ctx context.Context, summaries []*entity.FeedStockSummary) ([]byte, error)
}
