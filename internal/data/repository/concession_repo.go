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

type ConcessionRepository interface {
	Create(ctx context.Context, concession *entity.ConcessionType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ConcessionType, error)
	FindAll(ctx context.Context) ([]*entity.ConcessionType, error)
}

type concessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewConcessionRepository(db database.PgxIface, log *zap.Logger) ConcessionRepository {
	return &concessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "concession")),
	}
}

func (r *concessionRepository) Create(ctx context.Context, c *entity.ConcessionType) error {
	query := `
		INSERT INTO concession_types (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to create concession type", zap.Error(err), zap.String("name", c.Name))
		return fmt.Errorf("create concession type %s: %w", c.Name, err)
	}

	return nil
}

func (r *concessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ConcessionType, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM concession_types WHERE id = $1`

	var c entity.ConcessionType
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find concession type", zap.Error(err), zap.String("concession_type_id", id.String()))
		return nil, fmt.Errorf("find concession type %s: %w", id, err)
	}

	return &c, nil
}

func (r *concessionRepository) FindAll(ctx context.Context) ([]*entity.ConcessionType, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM concession_types ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find concession types", zap.Error(err))
		return nil, fmt.Errorf("find concession types: %w", err)
	}
	defer rows.Close()

	var concessions []*entity.ConcessionType
	for rows.Next() {
		var c entity.ConcessionType
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.log.Error("Failed to scan concession type row", zap.Error(err))
			return nil, fmt.Errorf("scan concession type row: %w", err)
		}
		concessions = append(concessions, &c)
	}

	return concessions, rows.Err()
}
