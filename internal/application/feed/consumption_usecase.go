package feed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain"
	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/feed"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

// ConsumptionUseCase registra los consumos de alimento: valida la entrada,
// verifica disponibilidad y mantiene el resumen de stock en la misma
// transacción que la escritura del registro, de modo que nunca queda un
// consumo persistido con el balance sin ajustar.
type ConsumptionUseCase struct {
	txRunner TxRunner
	consRepo repository.ConsumptionRepository // lecturas fuera de tx
	stock    *StockUseCase
}

// NewConsumptionUseCase construye el caso de uso.
func NewConsumptionUseCase(
	txRunner TxRunner,
	consRepo repository.ConsumptionRepository,
	stock *StockUseCase,
) *ConsumptionUseCase {
	return &ConsumptionUseCase{
		txRunner: txRunner,
		consRepo: consRepo,
		stock:    stock,
	}
}

// ConsumptionInput entrada para registrar un consumo de alimento.
type ConsumptionInput struct {
	Batch           string
	FeedType        string
	FeedName        string
	Quantity        decimal.Decimal
	Unit            string
	ConsumptionDate time.Time
	CreatedBy       string
}

// ConsumptionPatch campos opcionales para editar un consumo existente.
// Solo los campos no nil se aplican.
type ConsumptionPatch struct {
	Batch           *string
	FeedType        *string
	FeedName        *string
	Quantity        *decimal.Decimal
	Unit            *string
	ConsumptionDate *time.Time
}

func (in ConsumptionInput) validate() error {
	if in.Batch == "" || !entity.ValidFeedType(in.FeedType) || !entity.ValidUnit(in.Unit) {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() || in.ConsumptionDate.IsZero() {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create valida y persiste un consumo. En una sola transacción: bloquea la
// fila del resumen, verifica que el stock disponible cubra la cantidad
// convertida a kg (precondición dura, sin consumos parciales), inserta el
// registro y aplica el delta negativo con su recálculo. Devuelve el ID.
func (uc *ConsumptionUseCase) Create(ctx context.Context, input ConsumptionInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}
	requiredKg := feed.ToKilograms(input.Quantity, input.Unit)

	var id int64
	err := uc.txRunner.Run(ctx, func(
		consRepo repository.ConsumptionRepository,
		stockRepo repository.FeedStockRepository,
	) error {
		current, err := stockRepo.GetForUpdate(input.FeedType)
		if err != nil {
			return err
		}
		if current.QuantityKg.LessThan(requiredKg) {
			return &domain.InsufficientStockError{
				FeedType:    input.FeedType,
				AvailableKg: current.QuantityKg,
				RequiredKg:  requiredKg,
			}
		}
		entry := &entity.ConsumptionEntry{
			Batch:           input.Batch,
			FeedType:        input.FeedType,
			FeedName:        input.FeedName,
			Quantity:        input.Quantity,
			Unit:            input.Unit,
			ConsumptionDate: input.ConsumptionDate,
			CreatedAt:       time.Now(),
			CreatedBy:       input.CreatedBy,
		}
		if err := consRepo.Create(entry); err != nil {
			return err
		}
		id = entry.ID
		return uc.stock.adjustInTx(consRepo, stockRepo, input.FeedType, requiredKg.Neg())
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update aplica un parche de campos a un consumo y reconcilia el balance en
// la misma transacción: se calcula el delta en kg entre el registro viejo y
// el nuevo; si cambia el tipo de alimento, se acredita el tipo anterior y se
// debita el nuevo (con verificación de disponibilidad en el débito).
func (uc *ConsumptionUseCase) Update(ctx context.Context, id int64, patch ConsumptionPatch) error {
	if patch.Quantity != nil && !patch.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	if patch.Unit != nil && !entity.ValidUnit(*patch.Unit) {
		return domain.ErrInvalidInput
	}
	if patch.FeedType != nil && !entity.ValidFeedType(*patch.FeedType) {
		return domain.ErrInvalidInput
	}
	if patch.Batch != nil && *patch.Batch == "" {
		return domain.ErrInvalidInput
	}

	return uc.txRunner.Run(ctx, func(
		consRepo repository.ConsumptionRepository,
		stockRepo repository.FeedStockRepository,
	) error {
		old, err := consRepo.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}

		updated := *old
		if patch.Batch != nil {
			updated.Batch = *patch.Batch
		}
		if patch.FeedType != nil {
			updated.FeedType = *patch.FeedType
		}
		if patch.FeedName != nil {
			updated.FeedName = *patch.FeedName
		}
		if patch.Quantity != nil {
			updated.Quantity = *patch.Quantity
		}
		if patch.Unit != nil {
			updated.Unit = *patch.Unit
		}
		if patch.ConsumptionDate != nil {
			updated.ConsumptionDate = *patch.ConsumptionDate
		}

		oldKg := feed.ToKilograms(old.Quantity, old.Unit)
		newKg := feed.ToKilograms(updated.Quantity, updated.Unit)

		if updated.FeedType == old.FeedType {
			// Si el consumo crece, el extra debe caber en el stock actual.
			if newKg.GreaterThan(oldKg) {
				current, err := stockRepo.GetForUpdate(old.FeedType)
				if err != nil {
					return err
				}
				extra := newKg.Sub(oldKg)
				if current.QuantityKg.LessThan(extra) {
					return &domain.InsufficientStockError{
						FeedType:    old.FeedType,
						AvailableKg: current.QuantityKg,
						RequiredKg:  extra,
					}
				}
			}
			if err := consRepo.Update(&updated); err != nil {
				return err
			}
			return uc.stock.adjustInTx(consRepo, stockRepo, old.FeedType, oldKg.Sub(newKg))
		}

		// Cambio de tipo: el consumo completo se debita del tipo nuevo.
		current, err := stockRepo.GetForUpdate(updated.FeedType)
		if err != nil {
			return err
		}
		if current.QuantityKg.LessThan(newKg) {
			return &domain.InsufficientStockError{
				FeedType:    updated.FeedType,
				AvailableKg: current.QuantityKg,
				RequiredKg:  newKg,
			}
		}
		if err := consRepo.Update(&updated); err != nil {
			return err
		}
		if err := uc.stock.adjustInTx(consRepo, stockRepo, old.FeedType, oldKg); err != nil {
			return err
		}
		return uc.stock.adjustInTx(consRepo, stockRepo, updated.FeedType, newKg.Neg())
	})
}

// Delete elimina un consumo y devuelve sus kilogramos al balance del tipo
// (crédito compensatorio), todo en una transacción.
func (uc *ConsumptionUseCase) Delete(ctx context.Context, id int64) error {
	return uc.txRunner.Run(ctx, func(
		consRepo repository.ConsumptionRepository,
		stockRepo repository.FeedStockRepository,
	) error {
		old, err := consRepo.GetByID(id)
		if err != nil {
			return err
		}
		if old == nil {
			return domain.ErrNotFound
		}
		if err := consRepo.Delete(id); err != nil {
			return err
		}
		creditKg := feed.ToKilograms(old.Quantity, old.Unit)
		return uc.stock.adjustInTx(consRepo, stockRepo, old.FeedType, creditKg)
	})
}

// List devuelve todos los consumos, más recientes primero.
func (uc *ConsumptionUseCase) List(ctx context.Context) ([]*entity.ConsumptionEntry, error) {
	return uc.consRepo.List(repository.ConsumptionFilter{})
}

// ListByBatch devuelve los consumos de un lote.
func (uc *ConsumptionUseCase) ListByBatch(ctx context.Context, batch string) ([]*entity.ConsumptionEntry, error) {
	if batch == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.consRepo.List(repository.ConsumptionFilter{Batch: batch})
}

// ListByFeedType devuelve los consumos de un tipo de alimento.
func (uc *ConsumptionUseCase) ListByFeedType(ctx context.Context, feedType string) ([]*entity.ConsumptionEntry, error) {
	if !entity.ValidFeedType(feedType) {
		return nil, domain.ErrInvalidInput
	}
	return uc.consRepo.List(repository.ConsumptionFilter{FeedType: feedType})
}

// ListByDateRange devuelve los consumos entre dos fechas (inclusive).
func (uc *ConsumptionUseCase) ListByDateRange(ctx context.Context, from, to time.Time) ([]*entity.ConsumptionEntry, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	return uc.consRepo.List(repository.ConsumptionFilter{From: &from, To: &to})
}
