package feed

import (
	"context"

	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// ReportUseCase arma el informe PDF del stock de alimento a partir de las
// filas de resumen vigentes.
type ReportUseCase struct {
	stockRepo repository.FeedStockRepository
	generator StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(stockRepo repository.FeedStockRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{stockRepo: stockRepo, generator: generator}
}

// GenerateStockReport devuelve los bytes del PDF con el resumen por tipo.
func (uc *ReportUseCase) GenerateStockReport(ctx context.Context) ([]byte, error) {
	summaries, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStockReport(ctx, summaries)
}
