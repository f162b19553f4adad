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

type VenueRepository interface {
	Create(ctx context.Context, venue *entity.Venue) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Venue, error)
	Count(ctx context.Context) (int64, error)

	CreateSeatGroup(ctx context.Context, group *entity.SeatGroup) error
	FindSeatGroupByID(ctx context.Context, id uuid.UUID) (*entity.SeatGroup, error)
	FindSeatGroupsByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.SeatGroup, error)
}

type venueRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVenueRepository(db database.PgxIface, log *zap.Logger) VenueRepository {
	return &venueRepository{
		db:  db,
		log: log.With(zap.String("repository", "venue")),
	}
}

const venueColumns = `id, name, description, address, internal_capacity, created_at, updated_at, deleted_at`

func scanVenue(row pgx.Row) (*entity.Venue, error) {
	var v entity.Venue
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Description,
		&v.Address,
		&v.InternalCapacity,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *venueRepository) Create(ctx context.Context, venue *entity.Venue) error {
	query := `
		INSERT INTO venues (id, name, description, address, internal_capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		venue.ID,
		venue.Name,
		venue.Description,
		venue.Address,
		venue.InternalCapacity,
		venue.CreatedAt,
		venue.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create venue", zap.Error(err), zap.String("name", venue.Name))
		return fmt.Errorf("create venue %s: %w", venue.Name, err)
	}

	return nil
}

func (r *venueRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1 AND deleted_at IS NULL`

	venue, err := scanVenue(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find venue by ID", zap.Error(err), zap.String("venue_id", id.String()))
		return nil, fmt.Errorf("find venue by ID %s: %w", id, err)
	}

	return venue, nil
}

func (r *venueRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Venue, error) {
	query := `
		SELECT ` + venueColumns + `
		FROM venues
		WHERE deleted_at IS NULL
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find venues", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("find venues: %w", err)
	}
	defer rows.Close()

	var venues []*entity.Venue
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			r.log.Error("Failed to scan venue row", zap.Error(err))
			return nil, fmt.Errorf("scan venue row: %w", err)
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

func (r *venueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM venues WHERE deleted_at IS NULL`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count venues", zap.Error(err))
		return 0, fmt.Errorf("count venues: %w", err)
	}

	return count, nil
}

const seatGroupColumns = `id, venue_id, name, description, capacity, is_internal, created_at, updated_at`

func scanSeatGroup(row pgx.Row) (*entity.SeatGroup, error) {
	var g entity.SeatGroup
	err := row.Scan(
		&g.ID,
		&g.VenueID,
		&g.Name,
		&g.Description,
		&g.Capacity,
		&g.IsInternal,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *venueRepository) CreateSeatGroup(ctx context.Context, group *entity.SeatGroup) error {
	query := `
		INSERT INTO seat_groups (id, venue_id, name, description, capacity, is_internal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		group.ID,
		group.VenueID,
		group.Name,
		group.Description,
		group.Capacity,
		group.IsInternal,
		group.CreatedAt,
		group.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create seat group",
			zap.Error(err),
			zap.String("venue_id", group.VenueID.String()),
			zap.String("name", group.Name),
		)
		return fmt.Errorf("create seat group %s: %w", group.Name, err)
	}

	return nil
}

func (r *venueRepository) FindSeatGroupByID(ctx context.Context, id uuid.UUID) (*entity.SeatGroup, error) {
	query := `SELECT ` + seatGroupColumns + ` FROM seat_groups WHERE id = $1`

	group, err := scanSeatGroup(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat group by ID", zap.Error(err), zap.String("seat_group_id", id.String()))
		return nil, fmt.Errorf("find seat group by ID %s: %w", id, err)
	}

	return group, nil
}

func (r *venueRepository) FindSeatGroupsByVenueID(ctx context.Context, venueID uuid.UUID) ([]*entity.SeatGroup, error) {
	query := `SELECT ` + seatGroupColumns + ` FROM seat_groups WHERE venue_id = $1 ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, venueID)
	if err != nil {
		r.log.Error("Failed to find seat groups", zap.Error(err), zap.String("venue_id", venueID.String()))
		return nil, fmt.Errorf("find seat groups for venue %s: %w", venueID, err)
	}
	defer rows.Close()

	var groups []*entity.SeatGroup
	for rows.Next() {
		group, err := scanSeatGroup(rows)
		if err != nil {
			r.log.Error("Failed to scan seat group row", zap.Error(err))
			return nil, fmt.Errorf("scan seat group row: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}
