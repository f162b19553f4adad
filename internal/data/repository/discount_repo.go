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

type DiscountRepository interface {
	// Create stores the discount, its requirements and the performances it is offered on.
	Create(ctx context.Context, discount *entity.Discount, performanceIDs []uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error)
	// FindByPerformanceID returns the live catalogue for a performance in a stable order.
	FindByPerformanceID(ctx context.Context, performanceID uuid.UUID) ([]*entity.Discount, error)
	FindPerformanceIDs(ctx context.Context, discountID uuid.UUID) ([]uuid.UUID, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

type discountRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDiscountRepository(db database.PgxIface, log *zap.Logger) DiscountRepository {
	return &discountRepository{
		db:  db,
		log: log.With(zap.String("repository", "discount")),
	}
}

func (r *discountRepository) Create(ctx context.Context, d *entity.Discount, performanceIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create discount: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO discounts (id, name, discount, seat_group_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.Name, d.Rate, d.SeatGroupID, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create discount", zap.Error(err), zap.String("name", d.Name))
		return fmt.Errorf("create discount %s: %w", d.Name, err)
	}

	batch := &pgx.Batch{}
	for _, req := range d.Requirements {
		batch.Queue(`
			INSERT INTO discount_requirements (id, discount_id, concession_type_id, number, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, req.ID, d.ID, req.ConcessionTypeID, req.Number, req.CreatedAt)
	}
	for _, performanceID := range performanceIDs {
		batch.Queue(`
			INSERT INTO discount_performances (discount_id, performance_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, d.ID, performanceID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to create discount requirements", zap.Error(err), zap.String("discount_id", d.ID.String()))
		return fmt.Errorf("create requirements for discount %s: %w", d.ID, err)
	}

	return tx.Commit(ctx)
}

const discountColumns = `d.id, d.name, d.discount, d.seat_group_id, d.created_at, d.updated_at, d.deleted_at`

func scanDiscount(row pgx.Row) (*entity.Discount, error) {
	var d entity.Discount
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Rate,
		&d.SeatGroupID,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *discountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts d WHERE d.id = $1 AND d.deleted_at IS NULL`

	d, err := scanDiscount(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find discount by ID", zap.Error(err), zap.String("discount_id", id.String()))
		return nil, fmt.Errorf("find discount by ID %s: %w", id, err)
	}

	if err := r.loadRequirements(ctx, []*entity.Discount{d}); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *discountRepository) FindByPerformanceID(ctx context.Context, performanceID uuid.UUID) ([]*entity.Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discounts d
		JOIN discount_performances dp ON dp.discount_id = d.id
		WHERE dp.performance_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.created_at ASC, d.id ASC
	`

	rows, err := r.db.Query(ctx, query, performanceID)
	if err != nil {
		r.log.Error("Failed to find discounts", zap.Error(err), zap.String("performance_id", performanceID.String()))
		return nil, fmt.Errorf("find discounts for performance %s: %w", performanceID, err)
	}
	defer rows.Close()

	var discounts []*entity.Discount
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			r.log.Error("Failed to scan discount row", zap.Error(err))
			return nil, fmt.Errorf("scan discount row: %w", err)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discounts: %w", err)
	}

	if err := r.loadRequirements(ctx, discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *discountRepository) loadRequirements(ctx context.Context, discounts []*entity.Discount) error {
	if len(discounts) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*entity.Discount, len(discounts))
	ids := make([]uuid.UUID, 0, len(discounts))
	for _, d := range discounts {
		byID[d.ID] = d
		ids = append(ids, d.ID)
	}

	query := `
		SELECT id, discount_id, concession_type_id, number, created_at
		FROM discount_requirements
		WHERE discount_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find discount requirements", zap.Error(err), zap.Int("discounts", len(ids)))
		return fmt.Errorf("find discount requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req entity.DiscountRequirement
		if err := rows.Scan(&req.ID, &req.DiscountID, &req.ConcessionTypeID, &req.Number, &req.CreatedAt); err != nil {
			r.log.Error("Failed to scan discount requirement row", zap.Error(err))
			return fmt.Errorf("scan discount requirement row: %w", err)
		}
		if d, ok := byID[req.DiscountID]; ok {
			d.Requirements = append(d.Requirements, req)
		}
	}

	return rows.Err()
}

func (r *discountRepository) FindPerformanceIDs(ctx context.Context, discountID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT performance_id FROM discount_performances WHERE discount_id = $1`, discountID)
	if err != nil {
		r.log.Error("Failed to find discount performances", zap.Error(err), zap.String("discount_id", discountID.String()))
		return nil, fmt.Errorf("find performances for discount %s: %w", discountID, err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect performances for discount %s: %w", discountID, err)
	}
	return ids, nil
}

func (r *discountRepository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.Exec(ctx,
		`UPDATE discounts SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`, id, at)
	if err != nil {
		r.log.Error("Failed to delete discount", zap.Error(err), zap.String("discount_id", id.String()))
		return fmt.Errorf("delete discount %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("discount %s: %w", id, ErrNotFound)
	}

	return nil
}
