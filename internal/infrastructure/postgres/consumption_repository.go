package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Granja-api/internal/domain/entity"
	"github.com/jhoicas/Granja-api/internal/domain/repository"
)

var _ repository.ConsumptionRepository = (*ConsumptionRepo)(nil)

// ConsumptionRepo implementación de ConsumptionRepository sobre PostgreSQL
// (usable con pool o tx).
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

const consumptionColumns = `id, batch, feed_type, feed_name, quantity, unit, consumption_date, created_at, created_by`

func scanConsumption(row pgx.Row) (*entity.ConsumptionEntry, error) {
	var e entity.ConsumptionEntry
	var createdBy *string
	err := row.Scan(
		&e.ID, &e.Batch, &e.FeedType, &e.FeedName,
		&e.Quantity, &e.Unit, &e.ConsumptionDate, &e.CreatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		e.CreatedBy = *createdBy
	}
	return &e, nil
}

// Create persiste un consumo y asigna el ID generado por la base.
func (r *ConsumptionRepo) Create(e *entity.ConsumptionEntry) error {
	query := `
		INSERT INTO feed_consumption (batch, feed_type, feed_name, quantity, unit, consumption_date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	createdBy := (*string)(nil)
	if e.CreatedBy != "" {
		createdBy = &e.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		e.Batch, e.FeedType, e.FeedName, e.Quantity, e.Unit,
		e.ConsumptionDate, e.CreatedAt, createdBy,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("create consumption: %w", err)
	}
	return nil
}

// GetByID obtiene un consumo por ID; nil, nil si no existe.
func (r *ConsumptionRepo) GetByID(id int64) (*entity.ConsumptionEntry, error) {
	query := `
		SELECT ` + consumptionColumns + `
		FROM feed_consumption WHERE id = $1`
	e, err := scanConsumption(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get consumption: %w", err)
	}
	return e, nil
}

// Update reescribe los campos editables de un consumo.
func (r *ConsumptionRepo) Update(e *entity.ConsumptionEntry) error {
	query := `
		UPDATE feed_consumption
		SET batch = $1, feed_type = $2, feed_name = $3, quantity = $4, unit = $5, consumption_date = $6
		WHERE id = $7`
	_, err := r.q.Exec(context.Background(), query,
		e.Batch, e.FeedType, e.FeedName, e.Quantity, e.Unit, e.ConsumptionDate, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update consumption: %w", err)
	}
	return nil
}

// Delete elimina un consumo por ID.
func (r *ConsumptionRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM feed_consumption WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete consumption: %w", err)
	}
	return nil
}

// List devuelve los consumos que cumplen el filtro, más recientes primero.
func (r *ConsumptionRepo) List(filter repository.ConsumptionFilter) ([]*entity.ConsumptionEntry, error) {
	query := `
		SELECT ` + consumptionColumns + `
		FROM feed_consumption WHERE 1=1`
	var args []any
	pos := 1
	if filter.Batch != "" {
		query += fmt.Sprintf(" AND batch = $%d", pos)
		args = append(args, filter.Batch)
		pos++
	}
	if filter.FeedType != "" {
		query += fmt.Sprintf(" AND feed_type = $%d", pos)
		args = append(args, filter.FeedType)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND consumption_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND consumption_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY consumption_date DESC, id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list consumption: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConsumptionEntry
	for rows.Next() {
		e, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListByFeedTypeSince historial de un tipo desde una fecha (inclusive),
// en orden ascendente para el agrupamiento por día.
func (r *ConsumptionRepo) ListByFeedTypeSince(feedType string, since time.Time) ([]*entity.ConsumptionEntry, error) {
	query := `
		SELECT ` + consumptionColumns + `
		FROM feed_consumption
		WHERE feed_type = $1 AND consumption_date >= $2
		ORDER BY consumption_date`
	rows, err := r.q.Query(context.Background(), query, feedType, since)
	if err != nil {
		return nil, fmt.Errorf("list consumption since: %w", err)
	}
	defer rows.Close()
	var list []*entity.ConsumptionEntry
	for rows.Next() {
		e, err := scanConsumption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consumption: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
