package repository

import (
	"context"
	"errors"
	"fmt"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PerformanceRepository interface {
	// CreateWithSeatGroups inserts the performance and its seat-group rows atomically.
	CreateWithSeatGroups(ctx context.Context, performance *entity.Performance, groups []*entity.PerformanceSeatGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Performance, error)
	FindByProductionID(ctx context.Context, productionID uuid.UUID) ([]*entity.Performance, error)

	FindSeatGroups(ctx context.Context, performanceID uuid.UUID) ([]*entity.PerformanceSeatGroup, error)
	UpsertSeatGroup(ctx context.Context, group *entity.PerformanceSeatGroup) error
}

type performanceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPerformanceRepository(db database.PgxIface, log *zap.Logger) PerformanceRepository {
	return &performanceRepository{
		db:  db,
		log: log.With(zap.String("repository", "performance")),
	}
}

const performanceColumns = `id, production_id, venue_id, doors_open, start_time, end_time,
	extra_information, capacity, created_at, updated_at, deleted_at`

func scanPerformance(row pgx.Row) (*entity.Performance, error) {
	var p entity.Performance
	err := row.Scan(
		&p.ID,
		&p.ProductionID,
		&p.VenueID,
		&p.DoorsOpen,
		&p.Start,
		&p.End,
		&p.ExtraInformation,
		&p.CapacityOverride,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *performanceRepository) CreateWithSeatGroups(ctx context.Context, p *entity.Performance, groups []*entity.PerformanceSeatGroup) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create performance: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO performances (id, production_id, venue_id, doors_open, start_time, end_time,
			extra_information, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.Exec(ctx, query,
		p.ID,
		p.ProductionID,
		p.VenueID,
		p.DoorsOpen,
		p.Start,
		p.End,
		p.ExtraInformation,
		p.CapacityOverride,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create performance",
			zap.Error(err),
			zap.String("production_id", p.ProductionID.String()),
		)
		return fmt.Errorf("create performance: %w", err)
	}

	batch := &pgx.Batch{}
	for _, g := range groups {
		batch.Queue(`
			INSERT INTO performance_seat_groups (id, performance_id, seat_group_id, price, capacity, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, g.ID, g.PerformanceID, g.SeatGroupID, g.Price, g.Capacity, g.CreatedAt, g.UpdatedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		r.log.Error("Failed to create performance seat groups",
			zap.Error(err),
			zap.String("performance_id", p.ID.String()),
		)
		return fmt.Errorf("create seat groups for performance %s: %w", p.ID, err)
	}

	return tx.Commit(ctx)
}

func (r *performanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Performance, error) {
	query := `SELECT ` + performanceColumns + ` FROM performances WHERE id = $1 AND deleted_at IS NULL`

	performance, err := scanPerformance(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find performance by ID", zap.Error(err), zap.String("performance_id", id.String()))
		return nil, fmt.Errorf("find performance by ID %s: %w", id, err)
	}

	return performance, nil
}

func (r *performanceRepository) FindByProductionID(ctx context.Context, productionID uuid.UUID) ([]*entity.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performances
		WHERE production_id = $1 AND deleted_at IS NULL
		ORDER BY start_time ASC
	`

	rows, err := r.db.Query(ctx, query, productionID)
	if err != nil {
		r.log.Error("Failed to find performances", zap.Error(err), zap.String("production_id", productionID.String()))
		return nil, fmt.Errorf("find performances for production %s: %w", productionID, err)
	}
	defer rows.Close()

	var performances []*entity.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			r.log.Error("Failed to scan performance row", zap.Error(err))
			return nil, fmt.Errorf("scan performance row: %w", err)
		}
		performances = append(performances, p)
	}

	return performances, rows.Err()
}

func (r *performanceRepository) FindSeatGroups(ctx context.Context, performanceID uuid.UUID) ([]*entity.PerformanceSeatGroup, error) {
	query := `
		SELECT id, performance_id, seat_group_id, price, capacity, created_at, updated_at
		FROM performance_seat_groups
		WHERE performance_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, performanceID)
	if err != nil {
		r.log.Error("Failed to find performance seat groups", zap.Error(err), zap.String("performance_id", performanceID.String()))
		return nil, fmt.Errorf("find seat groups for performance %s: %w", performanceID, err)
	}
	defer rows.Close()

	var groups []*entity.PerformanceSeatGroup
	for rows.Next() {
		var g entity.PerformanceSeatGroup
		err := rows.Scan(
			&g.ID,
			&g.PerformanceID,
			&g.SeatGroupID,
			&g.Price,
			&g.Capacity,
			&g.CreatedAt,
			&g.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan performance seat group row", zap.Error(err))
			return nil, fmt.Errorf("scan performance seat group row: %w", err)
		}
		groups = append(groups, &g)
	}

	return groups, rows.Err()
}

// UpsertSeatGroup sets price and capacity of a seat group for a performance.
// On conflict the existing row keeps its id.
func (r *performanceRepository) UpsertSeatGroup(ctx context.Context, g *entity.PerformanceSeatGroup) error {
	query := `
		INSERT INTO performance_seat_groups (id, performance_id, seat_group_id, price, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (performance_id, seat_group_id)
		DO UPDATE SET price = EXCLUDED.price, capacity = EXCLUDED.capacity, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		g.ID,
		g.PerformanceID,
		g.SeatGroupID,
		g.Price,
		g.Capacity,
		g.CreatedAt,
		g.UpdatedAt,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		r.log.Error("Failed to upsert performance seat group",
			zap.Error(err),
			zap.String("performance_id", g.PerformanceID.String()),
			zap.String("seat_group_id", g.SeatGroupID.String()),
		)
		return fmt.Errorf("upsert seat group %s for performance %s: %w", g.SeatGroupID, g.PerformanceID, err)
	}

	return nil
}
