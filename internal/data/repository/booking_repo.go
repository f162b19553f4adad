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

type BookingRepository interface {
	// CreateWithTickets inserts the booking and all of its tickets atomically.
	CreateWithTickets(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPerformanceID(ctx context.Context, performanceID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByPerformanceID(ctx context.Context, performanceID uuid.UUID) (int64, error)
	Update(ctx context.Context, booking *entity.Booking) error
	// UpdateWithPayment saves the booking and records the payment in one transaction.
	UpdateWithPayment(ctx context.Context, booking *entity.Booking, payment *entity.Payment) error

	// CountTicketsBySeatGroup counts tickets held by non-cancelled bookings.
	CountTicketsBySeatGroup(ctx context.Context, performanceID uuid.UUID) (map[uuid.UUID]int, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_reference, performance_id, status, total_price, created_at, updated_at, deleted_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.Reference,
		&b.PerformanceID,
		&b.Status,
		&b.TotalPrice,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) CreateWithTickets(ctx context.Context, b *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO bookings (id, booking_reference, performance_id, status, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		b.ID,
		b.Reference,
		b.PerformanceID,
		b.Status,
		b.TotalPrice,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("performance_id", b.PerformanceID.String()),
		)
		return fmt.Errorf("create booking %s: %w", b.Reference, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"tickets"},
		[]string{"id", "booking_id", "seat_group_id", "concession_type_id", "created_at"},
		pgx.CopyFromSlice(len(b.Tickets), func(i int) ([]any, error) {
			t := b.Tickets[i]
			return []any{t.ID, b.ID, t.SeatGroupID, t.ConcessionTypeID, t.CreatedAt}, nil
		}),
	)
	if err != nil {
		r.log.Error("Failed to create tickets",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.Int("tickets", len(b.Tickets)),
		)
		return fmt.Errorf("create tickets for booking %s: %w", b.Reference, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit booking %s: %w", b.Reference, err)
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	if err := r.loadTickets(ctx, []*entity.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *bookingRepository) FindByPerformanceID(ctx context.Context, performanceID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE performance_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, performanceID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by performance ID",
			zap.Error(err),
			zap.String("performance_id", performanceID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by performance ID %s: %w", performanceID, err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	if err := r.loadTickets(ctx, bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) loadTickets(ctx context.Context, bookings []*entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*entity.Booking, len(bookings))
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := `
		SELECT id, booking_id, seat_group_id, concession_type_id, created_at
		FROM tickets
		WHERE booking_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find tickets", zap.Error(err), zap.Int("bookings", len(ids)))
		return fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.BookingID, &t.SeatGroupID, &t.ConcessionTypeID, &t.CreatedAt); err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return fmt.Errorf("scan ticket row: %w", err)
		}
		if b, ok := byID[t.BookingID]; ok {
			b.Tickets = append(b.Tickets, t)
		}
	}

	return rows.Err()
}

func (r *bookingRepository) CountByPerformanceID(ctx context.Context, performanceID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE performance_id = $1 AND deleted_at IS NULL`

	var count int64
	if err := r.db.QueryRow(ctx, query, performanceID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by performance ID",
			zap.Error(err),
			zap.String("performance_id", performanceID.String()),
		)
		return 0, fmt.Errorf("count bookings by performance ID %s: %w", performanceID, err)
	}

	return count, nil
}

const updateBookingQuery = `
	UPDATE bookings
	SET status = $2, total_price = $3, updated_at = $4
	WHERE id = $1 AND deleted_at IS NULL
`

func (r *bookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	result, err := r.db.Exec(ctx, updateBookingQuery, b.ID, b.Status, b.TotalPrice, b.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
		return fmt.Errorf("update booking %s: %w", b.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", b.ID, ErrNotFound)
	}

	return nil
}

func (r *bookingRepository) UpdateWithPayment(ctx context.Context, b *entity.Booking, p *entity.Payment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin pay booking: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := tx.Exec(ctx, updateBookingQuery, b.ID, b.Status, b.TotalPrice, b.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
		return fmt.Errorf("update booking %s: %w", b.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s: %w", b.ID, ErrNotFound)
	}

	if err := insertPayment(ctx, tx, p); err != nil {
		r.log.Error("Failed to record payment", zap.Error(err), zap.String("booking_id", b.ID.String()))
		return err
	}

	return tx.Commit(ctx)
}

func (r *bookingRepository) CountTicketsBySeatGroup(ctx context.Context, performanceID uuid.UUID) (map[uuid.UUID]int, error) {
	query := `
		SELECT t.seat_group_id, COUNT(*)
		FROM tickets t
		JOIN bookings b ON b.id = t.booking_id
		WHERE b.performance_id = $1 AND b.status <> $2 AND b.deleted_at IS NULL
		GROUP BY t.seat_group_id
	`

	rows, err := r.db.Query(ctx, query, performanceID, entity.BookingStatusCancelled)
	if err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err), zap.String("performance_id", performanceID.String()))
		return nil, fmt.Errorf("count tickets for performance %s: %w", performanceID, err)
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int)
	for rows.Next() {
		var seatGroupID uuid.UUID
		var n int
		if err := rows.Scan(&seatGroupID, &n); err != nil {
			r.log.Error("Failed to scan ticket count row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket count row: %w", err)
		}
		counts[seatGroupID] = n
	}

	return counts, rows.Err()
}
