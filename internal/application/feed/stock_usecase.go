package feed

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/application/dto"
	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/feed"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// Ventana móvil para la tasa de consumo diaria.
const trailingWindowDays = 30

// Tasa mínima (kg/día) para proyectar la fecha de agotamiento. Por debajo
// de este umbral la proyección divergiría, así que ambos campos quedan nil.
var minProjectableRate = decimal.NewFromFloat(0.01)

// StockUseCase mantiene el balance de alimento por tipo y sus métricas
// derivadas: tasa diaria de consumo y proyección de agotamiento. Toda
// mutación pasa por una transacción que bloquea la fila del resumen, de
// modo que dos ajustes concurrentes del mismo tipo nunca pierden escrituras.
type StockUseCase struct {
	txRunner  TxRunner
	consRepo  repository.ConsumptionRepository
	stockRepo repository.FeedStockRepository
}

// NewStockUseCase construye el caso de uso. consRepo y stockRepo se usan
// para lecturas fuera de transacción; las escrituras van por txRunner.
func NewStockUseCase(
	txRunner TxRunner,
	consRepo repository.ConsumptionRepository,
	stockRepo repository.FeedStockRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:  txRunner,
		consRepo:  consRepo,
		stockRepo: stockRepo,
	}
}

// Adjust aplica un delta en kilogramos al balance de un tipo de alimento y
// recalcula el resumen completo. Los deltas positivos sirven el contrato con
// el ingreso de compras de alimento; los negativos los aplica el registro de
// consumos. Devuelve una referencia única del ajuste para trazabilidad.
func (uc *StockUseCase) Adjust(ctx context.Context, feedType string, deltaKg decimal.Decimal) (string, error) {
	if !entity.ValidFeedType(feedType) {
		return "", domain.ErrInvalidInput
	}
	ref := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		consRepo repository.ConsumptionRepository,
		stockRepo repository.FeedStockRepository,
	) error {
		return uc.adjustInTx(consRepo, stockRepo, feedType, deltaKg)
	})
	if err != nil {
		return "", err
	}
	log.Info().
		Str("ref", ref).
		Str("feed_type", feedType).
		Str("delta_kg", deltaKg.String()).
		Msg("ajuste de stock aplicado")
	return ref, nil
}

// adjustInTx ejecuta el ciclo leer-con-bloqueo → aplicar delta → recalcular
// → upsert dentro de la transacción del caller. El balance se trunca en cero:
// un retiro mayor al disponible no se rechaza aquí (eso es tarea del
// registrador de consumos) pero tampoco deja el resumen en negativo.
func (uc *StockUseCase) adjustInTx(
	consRepo repository.ConsumptionRepository,
	stockRepo repository.FeedStockRepository,
	feedType string,
	deltaKg decimal.Decimal,
) error {
	current, err := stockRepo.GetForUpdate(feedType)
	if err != nil {
		return err
	}
	newKg := current.QuantityKg.Add(deltaKg)
	if newKg.IsNegative() {
		log.Warn().
			Str("feed_type", feedType).
			Str("balance_kg", current.QuantityKg.String()).
			Str("delta_kg", deltaKg.String()).
			Msg("ajuste dejaría el balance negativo; truncado en cero")
		newKg = decimal.Zero
	}
	summary, err := uc.buildSummary(consRepo, feedType, newKg)
	if err != nil {
		return err
	}
	return stockRepo.Upsert(summary)
}

// buildSummary arma la fila de resumen para el nuevo balance: equivalencias
// en baldes y bultos, tasa diaria sobre los días con actividad de la ventana
// móvil, y proyección de agotamiento cuando la tasa lo permite.
func (uc *StockUseCase) buildSummary(
	consRepo repository.ConsumptionRepository,
	feedType string,
	newKg decimal.Decimal,
) (*entity.FeedStockSummary, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rate, err := dailyRate(consRepo, feedType, today)
	if err != nil {
		return nil, err
	}

	summary := &entity.FeedStockSummary{
		FeedType:         feedType,
		QuantityKg:       newKg,
		QuantityBuckets:  feed.BucketsFromKg(newKg),
		QuantitySacks:    feed.SacksFromKg(newKg),
		DailyConsumption: rate,
		UpdatedAt:        now,
	}
	if rate.GreaterThan(minProjectableRate) && newKg.IsPositive() {
		daysRemaining := int(newKg.Div(rate).Ceil().IntPart())
		finish := today.AddDate(0, 0, daysRemaining)
		summary.DaysRemaining = &daysRemaining
		summary.EstimatedFinishDate = &finish
	}
	return summary, nil
}

// dailyRate calcula la tasa de consumo: suma de kilogramos de la ventana
// móvil dividida entre los días *con actividad*, no entre los 30 días
// calendario. Promediar solo días activos evita diluir la tasa con días sin
// registros y debe preservarse tal cual por compatibilidad.
func dailyRate(consRepo repository.ConsumptionRepository, feedType string, today time.Time) (decimal.Decimal, error) {
	since := today.AddDate(0, 0, -trailingWindowDays)
	entries, err := consRepo.ListByFeedTypeSince(feedType, since)
	if err != nil {
		return decimal.Zero, err
	}

	activeDays := make(map[string]struct{}, len(entries))
	total := decimal.Zero
	for _, e := range entries {
		activeDays[e.ConsumptionDate.Format("2006-01-02")] = struct{}{}
		total = total.Add(feed.ToKilograms(e.Quantity, e.Unit))
	}
	if len(activeDays) == 0 {
		return decimal.Zero, nil
	}
	return total.Div(decimal.NewFromInt(int64(len(activeDays)))), nil
}

// GetAvailableStock devuelve el balance actual en kilogramos; 0 si el tipo
// aún no tiene fila de resumen.
func (uc *StockUseCase) GetAvailableStock(ctx context.Context, feedType string) (decimal.Decimal, error) {
	if !entity.ValidFeedType(feedType) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	summary, err := uc.stockRepo.Get(feedType)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.QuantityKg, nil
}

// GetSummary devuelve todas las filas de resumen del stock de alimento.
func (uc *StockUseCase) GetSummary(ctx context.Context) ([]*entity.FeedStockSummary, error) {
	return uc.stockRepo.List()
}

// GetDailyConsumptionTrend agrupa el consumo de un tipo de alimento por
// fecha calendario sobre los últimos `days` días (mismo agrupamiento que la
// tasa diaria). Devuelve solo los días con actividad, en orden ascendente.
func (uc *StockUseCase) GetDailyConsumptionTrend(ctx context.Context, feedType string, days int) ([]dto.DailyConsumptionPoint, error) {
	if !entity.ValidFeedType(feedType) || days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -days)

	entries, err := uc.consRepo.ListByFeedTypeSince(feedType, since)
	if err != nil {
		return nil, err
	}

	perDay := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		key := e.ConsumptionDate.Format("2006-01-02")
		perDay[key] = perDay[key].Add(feed.ToKilograms(e.Quantity, e.Unit))
	}

	dates := make([]string, 0, len(perDay))
	for d := range perDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	trend := make([]dto.DailyConsumptionPoint, 0, len(dates))
	for _, d := range dates {
		trend = append(trend, dto.DailyConsumptionPoint{
			Date:             d,
			TotalConsumption: perDay[d],
		})
	}
	return trend, nil
}

// RecomputeAll aplica un delta cero a cada tipo de alimento para refrescar
// tasa y proyección: la ventana móvil se desliza con los días aunque no
// entren consumos nuevos. Lo invoca el scheduler nocturno.
func (uc *StockUseCase) RecomputeAll(ctx context.Context) {
	runID := uuid.New().String()
	for _, ft := range entity.FeedTypes {
		err := uc.txRunner.Run(ctx, func(
			consRepo repository.ConsumptionRepository,
			stockRepo repository.FeedStockRepository,
		) error {
			return uc.adjustInTx(consRepo, stockRepo, ft, decimal.Zero)
		})
		if err != nil {
			log.Error().Err(err).
				Str("run_id", runID).
				Str("feed_type", ft).
				Msg("recálculo de resumen de stock falló")
			continue
		}
	}
	log.Info().Str("run_id", runID).Msg("recálculo de resúmenes de stock terminado")
}
