package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductionRepository interface {
	Create(ctx context.Context, production *entity.Production) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Production, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Production, error)
	Count(ctx context.Context) (int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type productionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductionRepository(db database.PgxIface, log *zap.Logger) ProductionRepository {
	return &productionRepository{
		db:  db,
		log: log.With(zap.String("repository", "production")),
	}
}

const productionColumns = `id, name, subtitle, description, age_rating, created_at, updated_at, deleted_at`

func scanProduction(row pgx.Row) (*entity.Production, error) {
	var p entity.Production
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Subtitle,
		&p.Description,
		&p.AgeRating,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productionRepository) Create(ctx context.Context, production *entity.Production) error {
	query := `
		INSERT INTO productions (id, name, subtitle, description, age_rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		production.ID,
		production.Name,
		production.Subtitle,
		production.Description,
		production.AgeRating,
		production.CreatedAt,
		production.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create production", zap.Error(err), zap.String("name", production.Name))
		return fmt.Errorf("create production %s: %w", production.Name, err)
	}

	return nil
}

func (r *productionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions WHERE id = $1 AND deleted_at IS NULL`

	production, err := scanProduction(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find production by ID", zap.Error(err), zap.String("production_id", id.String()))
		return nil, fmt.Errorf("find production by ID %s: %w", id, err)
	}

	return production, nil
}

func (r *productionRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Production, error) {
	query := `
		SELECT ` + productionColumns + `
		FROM productions
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find productions", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("find productions: %w", err)
	}
	defer rows.Close()

	var productions []*entity.Production
	for rows.Next() {
		production, err := scanProduction(rows)
		if err != nil {
			r.log.Error("Failed to scan production row", zap.Error(err))
			return nil, fmt.Errorf("scan production row: %w", err)
		}
		productions = append(productions, production)
	}

	return productions, rows.Err()
}

func (r *productionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM productions WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count productions", zap.Error(err))
		return 0, fmt.Errorf("count productions: %w", err)
	}

	return count, nil
}

// SoftDelete hides the production and its performances.
func (r *productionRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete production %s: %w", id, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx,
		`UPDATE productions SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		r.log.Error("Failed to delete production", zap.Error(err), zap.String("production_id", id.String()))
		return fmt.Errorf("delete production %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("production %s: %w", id, ErrNotFound)
	}

	_, err = tx.Exec(ctx,
		`UPDATE performances SET deleted_at = $2, updated_at = $2 WHERE production_id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		r.log.Error("Failed to delete performances", zap.Error(err), zap.String("production_id", id.String()))
		return fmt.Errorf("delete performances of production %s: %w", id, err)
	}

	return tx.Commit(ctx)
}
