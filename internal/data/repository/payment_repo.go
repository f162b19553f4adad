package repository

import (
	"context"
	"errors"
	"fmt"

	"box-office/internal/data/entity"
	"box-office/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByPayable(ctx context.Context, payable entity.Payable) ([]*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertPayment(ctx context.Context, db execer, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, payable_id, payable_type, provider_name, value, status,
			provider_transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := db.Exec(ctx, query,
		p.ID,
		p.PayableID,
		p.PayableType,
		p.Provider,
		p.Value,
		p.Status,
		p.TransactionID,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create payment for %s %s: %w", p.PayableType, p.PayableID, err)
	}
	return nil
}

func (r *paymentRepository) Create(ctx context.Context, p *entity.Payment) error {
	if err := insertPayment(ctx, r.db, p); err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("payable_type", p.PayableType),
			zap.String("payable_id", p.PayableID.String()),
		)
		return err
	}

	return nil
}

const paymentColumns = `id, payable_id, payable_type, provider_name, value, status,
	provider_transaction_id, created_at, updated_at, deleted_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(
		&p.ID,
		&p.PayableID,
		&p.PayableType,
		&p.Provider,
		&p.Value,
		&p.Status,
		&p.TransactionID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 AND deleted_at IS NULL`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID", zap.Error(err), zap.String("payment_id", id.String()))
		return nil, fmt.Errorf("find payment by ID %s: %w", id, err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByPayable(ctx context.Context, payable entity.Payable) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payable_type = $1 AND payable_id = $2 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query, payable.PayableType(), payable.PaymentReferenceID())
	if err != nil {
		r.log.Error("Failed to find payments",
			zap.Error(err),
			zap.String("payable_type", payable.PayableType()),
			zap.String("payable_id", payable.PaymentReferenceID().String()),
		)
		return nil, fmt.Errorf("find payments for %s %s: %w", payable.PayableType(), payable.PaymentReferenceID(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
