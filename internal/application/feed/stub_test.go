package feed_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── Repositorios en memoria para los casos de uso ─────────────────────────────

type stubConsumptionRepo struct {
	entries map[int64]*entity.ConsumptionEntry
	nextID  int64
}

func newStubConsumptionRepo() *stubConsumptionRepo {
	return &stubConsumptionRepo{entries: make(map[int64]*entity.ConsumptionEntry)}
}

func (r *stubConsumptionRepo) Create(e *entity.ConsumptionEntry) error {
	r.nextID++
	e.ID = r.nextID
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *stubConsumptionRepo) GetByID(id int64) (*entity.ConsumptionEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *stubConsumptionRepo) Update(e *entity.ConsumptionEntry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *stubConsumptionRepo) Delete(id int64) error {
	delete(r.entries, id)
	return nil
}

func (r *stubConsumptionRepo) List(filter repository.ConsumptionFilter) ([]*entity.ConsumptionEntry, error) {
	var list []*entity.ConsumptionEntry
	for _, e := range r.entries {
		if filter.Batch != "" && e.Batch != filter.Batch {
			continue
		}
		if filter.FeedType != "" && e.FeedType != filter.FeedType {
			continue
		}
		if filter.From != nil && e.ConsumptionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.ConsumptionDate.After(*filter.To) {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ConsumptionDate.Equal(list[j].ConsumptionDate) {
			return list[i].ConsumptionDate.After(list[j].ConsumptionDate)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *stubConsumptionRepo) ListByFeedTypeSince(feedType string, since time.Time) ([]*entity.ConsumptionEntry, error) {
	var list []*entity.ConsumptionEntry
	for _, e := range r.entries {
		if e.FeedType != feedType || e.ConsumptionDate.Before(since) {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ConsumptionDate.Before(list[j].ConsumptionDate)
	})
	return list, nil
}

// seed inserta un consumo directamente, sin pasar por el caso de uso.
func (r *stubConsumptionRepo) seed(feedType string, qty decimal.Decimal, unit string, date time.Time) {
	r.nextID++
	r.entries[r.nextID] = &entity.ConsumptionEntry{
		ID:              r.nextID,
		Batch:           "Batch-1",
		FeedType:        feedType,
		FeedName:        "alimento de prueba",
		Quantity:        qty,
		Unit:            unit,
		ConsumptionDate: date,
		CreatedAt:       date,
	}
}

type stubStockRepo struct {
	rows map[string]*entity.FeedStockSummary
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{rows: make(map[string]*entity.FeedStockSummary)}
}

func (r *stubStockRepo) Get(feedType string) (*entity.FeedStockSummary, error) {
	s, ok := r.rows[feedType]
	if !ok {
		return &entity.FeedStockSummary{
			FeedType:         feedType,
			QuantityKg:       decimal.Zero,
			QuantityBuckets:  decimal.Zero,
			QuantitySacks:    decimal.Zero,
			DailyConsumption: decimal.Zero,
		}, nil
	}
	cp := *s
	return &cp, nil
}

func (r *stubStockRepo) GetForUpdate(feedType string) (*entity.FeedStockSummary, error) {
	return r.Get(feedType)
}

func (r *stubStockRepo) Upsert(s *entity.FeedStockSummary) error {
	cp := *s
	r.rows[s.FeedType] = &cp
	return nil
}

func (r *stubStockRepo) List() ([]*entity.FeedStockSummary, error) {
	var list []*entity.FeedStockSummary
	for _, s := range r.rows {
		cp := *s
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FeedType < list[j].FeedType })
	return list, nil
}

// stubTxRunner ejecuta el callback directamente sobre los stubs (las pruebas
// de atomicidad real van contra PostgreSQL; aquí se prueba la lógica).
type stubTxRunner struct {
	cons  *stubConsumptionRepo
	stock *stubStockRepo
}

func (r *stubTxRunner) Run(_ context.Context, fn func(
	consRepo repository.ConsumptionRepository,
	stockRepo repository.FeedStockRepository,
) error) error {
	return fn(r.cons, r.stock)
}
