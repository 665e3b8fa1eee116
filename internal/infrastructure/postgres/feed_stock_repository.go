package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ repository.FeedStockRepository = (*FeedStockRepo)(nil)

// FeedStockRepo implementación de FeedStockRepository sobre PostgreSQL
// (usable con pool o tx).
type FeedStockRepo struct {
	q Querier
}

// NewFeedStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedStockRepository(q Querier) *FeedStockRepo {
	return &FeedStockRepo{q: q}
}

const feedStockColumns = `feed_type, quantity_kg, quantity_buckets, quantity_sacks,
		daily_consumption, estimated_finish_date, days_remaining, updated_at`

// emptySummary fila en cero para tipos que aún no tienen resumen.
func emptySummary(feedType string) *entity.FeedStockSummary {
	return &entity.FeedStockSummary{
		FeedType:         feedType,
		QuantityKg:       decimal.Zero,
		QuantityBuckets:  decimal.Zero,
		QuantitySacks:    decimal.Zero,
		DailyConsumption: decimal.Zero,
	}
}

func scanSummary(row pgx.Row) (*entity.FeedStockSummary, error) {
	var s entity.FeedStockSummary
	var finish *time.Time
	var days *int
	err := row.Scan(
		&s.FeedType, &s.QuantityKg, &s.QuantityBuckets, &s.QuantitySacks,
		&s.DailyConsumption, &finish, &days, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.EstimatedFinishDate = finish
	s.DaysRemaining = days
	return &s, nil
}

// Get obtiene el resumen de un tipo de alimento; fila en cero si no existe.
func (r *FeedStockRepo) Get(feedType string) (*entity.FeedStockSummary, error) {
	query := `
		SELECT ` + feedStockColumns + `
		FROM feed_stock_summary WHERE feed_type = $1`
	s, err := scanSummary(r.q.QueryRow(context.Background(), query, feedType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptySummary(feedType), nil
		}
		return nil, fmt.Errorf("get feed stock: %w", err)
	}
	return s, nil
}

// GetForUpdate obtiene el resumen y bloquea la fila (SELECT FOR UPDATE).
// FOR UPDATE solo sujeta filas existentes, así que primero se materializa
// la fila del tipo: sin ella, dos transacciones concurrentes sobre un tipo
// aún sin resumen leerían ambas cero y la segunda pisaría el upsert de la
// primera.
func (r *FeedStockRepo) GetForUpdate(feedType string) (*entity.FeedStockSummary, error) {
	ensure := `
		INSERT INTO feed_stock_summary (feed_type)
		VALUES ($1)
		ON CONFLICT (feed_type) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), ensure, feedType); err != nil {
		return nil, fmt.Errorf("ensure feed stock row: %w", err)
	}
	query := `
		SELECT ` + feedStockColumns + `
		FROM feed_stock_summary WHERE feed_type = $1
		FOR UPDATE`
	s, err := scanSummary(r.q.QueryRow(context.Background(), query, feedType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptySummary(feedType), nil
		}
		return nil, fmt.Errorf("get feed stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza el resumen con clave feed_type. La resolución
// de conflicto por clave garantiza que nunca haya filas duplicadas por tipo.
func (r *FeedStockRepo) Upsert(s *entity.FeedStockSummary) error {
	query := `
		INSERT INTO feed_stock_summary (feed_type, quantity_kg, quantity_buckets, quantity_sacks,
			daily_consumption, estimated_finish_date, days_remaining, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (feed_type)
		DO UPDATE SET
			quantity_kg = EXCLUDED.quantity_kg,
			quantity_buckets = EXCLUDED.quantity_buckets,
			quantity_sacks = EXCLUDED.quantity_sacks,
			daily_consumption = EXCLUDED.daily_consumption,
			estimated_finish_date = EXCLUDED.estimated_finish_date,
			days_remaining = EXCLUDED.days_remaining,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		s.FeedType, s.QuantityKg, s.QuantityBuckets, s.QuantitySacks,
		s.DailyConsumption, s.EstimatedFinishDate, s.DaysRemaining,
	)
	if err != nil {
		return fmt.Errorf("upsert feed stock: %w", err)
	}
	return nil
}

// List devuelve todas las filas de resumen ordenadas por tipo.
func (r *FeedStockRepo) List() ([]*entity.FeedStockSummary, error) {
	query := `
		SELECT ` + feedStockColumns + `
		FROM feed_stock_summary ORDER BY feed_type`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list feed stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.FeedStockSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feed stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
