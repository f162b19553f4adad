package repository

import (
	"context"
	"fmt"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"go.uber.org/zap"
)

type MiscCostRepository interface {
	Create(ctx context.Context, cost *entity.MiscCost) error
	// FindAll returns every live misc cost; each one applies to every booking.
	FindAll(ctx context.Context) ([]*entity.MiscCost, error)
}

type miscCostRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMiscCostRepository(db database.PgxIface, log *zap.Logger) MiscCostRepository {
	return &miscCostRepository{
		db:  db,
		log: log.With(zap.String("repository", "misc_cost")),
	}
}

func (r *miscCostRepository) Create(ctx context.Context, m *entity.MiscCost) error {
	query := `
		INSERT INTO misc_costs (id, name, description, value, percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query, m.ID, m.Name, m.Description, m.Value, m.Percentage, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create misc cost", zap.Error(err), zap.String("name", m.Name))
		return fmt.Errorf("create misc cost %s: %w", m.Name, err)
	}

	return nil
}

func (r *miscCostRepository) FindAll(ctx context.Context) ([]*entity.MiscCost, error) {
	query := `
		SELECT id, name, description, value, percentage, created_at, updated_at, deleted_at
		FROM misc_costs
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find misc costs", zap.Error(err))
		return nil, fmt.Errorf("find misc costs: %w", err)
	}
	defer rows.Close()

	var costs []*entity.MiscCost
	for rows.Next() {
		var m entity.MiscCost
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Description,
			&m.Value,
			&m.Percentage,
			&m.CreatedAt,
			&m.UpdatedAt,
			&m.DeletedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan misc cost row", zap.Error(err))
			return nil, fmt.Errorf("scan misc cost row: %w", err)
		}
		costs = append(costs, &m)
	}

	return costs, rows.Err()
}
