package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
)

const bookingColumns = `
	b.id, b.pnr_number, b.train_id, b.user_id, b.passenger_name, b.passenger_age,
	b.seat_class, b.berth_preference, b.status, b.seat_number, b.fare,
	b.contact_email, b.notified, b.created_at,
	t.id, t.train_name, t.source, t.destination, t.departure_time, t.arrival_time,
	t.total_seats, t.created_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var t domain.Train

	if err := row.Scan(
		&b.ID,
		&b.PNR,
		&b.TrainID,
		&b.UserID,
		&b.PassengerName,
		&b.PassengerAge,
		&b.SeatClass,
		&b.BerthPreference,
		&b.Status,
		&b.SeatNumber,
		&b.Fare,
		&b.ContactEmail,
		&b.Notified,
		&b.CreatedAt,
		&t.ID,
		&t.Name,
		&t.Source,
		&t.Destination,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.TotalSeats,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}

	b.Train = &t
	return &b, nil
}

// txLedger reads and writes one train's bookings inside the transaction
// that holds the row lock on that train.
type txLedger struct {
	tx    *sql.Tx
	train *domain.Train
}

func (l *txLedger) Train() *domain.Train {
	return l.train
}

func (l *txLedger) Counts(ctx context.Context) (domain.StatusCounts, error) {
	var counts domain.StatusCounts

	rows, err := l.tx.QueryContext(ctx, `
	SELECT status, COUNT(*)
	FROM bookings
	WHERE train_id = $1
	GROUP BY status
	`, l.train.ID)
	if err != nil {
		return counts, fmt.Errorf("failed to count bookings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status domain.BookingStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return counts, err
		}
		switch status {
		case domain.BookingConfirmed:
			counts.Confirmed = n
		case domain.BookingRAC:
			counts.RAC = n
		case domain.BookingWaitlisted:
			counts.Waitlisted = n
		}
	}
	return counts, rows.Err()
}

func (l *txLedger) Insert(ctx context.Context, b *domain.Booking) error {
	query := `
	INSERT INTO bookings (
		id, pnr_number, train_id, user_id, passenger_name, passenger_age, seat_class,
		berth_preference, status, seat_number, fare, contact_email, notified, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (pnr_number) DO NOTHING
	`

	result, err := l.tx.ExecContext(ctx, query,
		b.ID, b.PNR, b.TrainID, b.UserID, b.PassengerName, b.PassengerAge, b.SeatClass,
		b.BerthPreference, b.Status, b.SeatNumber, b.Fare, b.ContactEmail, b.Notified, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrDuplicatePNR
	}
	return nil
}

// WithTrainLock serialises allocation per train with SELECT ... FOR UPDATE
// on the train row. Bookings for other trains proceed in parallel.
func (r *BookingRepository) WithTrainLock(ctx context.Context, trainID uuid.UUID, fn func(ctx context.Context, ledger ports.TrainLedger) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	train, err := scanTrain(tx.QueryRowContext(ctx,
		`SELECT `+trainColumns+` FROM trains WHERE id = $1 FOR UPDATE`, trainID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to lock train: %w", err)
	}

	if err := fn(ctx, &txLedger{tx: tx, train: train}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings b
	JOIN trains t ON t.id = b.train_id
	WHERE b.pnr_number = $1
	`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, pnr))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings b
	JOIN trains t ON t.id = b.train_id
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC
	LIMIT $2 OFFSET $3
	`
	return r.list(ctx, query, userID, limit, offset)
}

func (r *BookingRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *BookingRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings b
	JOIN trains t ON t.id = b.train_id
	ORDER BY b.created_at DESC
	LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *BookingRepository) CountAll(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (r *BookingRepository) ListUnnotified(ctx context.Context, limit int) ([]domain.Booking, error) {
	query := `
	SELECT ` + bookingColumns + `
	FROM bookings b
	JOIN trains t ON t.id = b.train_id
	WHERE NOT b.notified
	ORDER BY b.created_at
	LIMIT $1
	`
	return r.list(ctx, query, limit)
}

func (r *BookingRepository) MarkNotified(ctx context.Context, bookingID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `UPDATE bookings SET notified = TRUE WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `DELETE FROM bookings WHERE user_id = $1 RETURNING train_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := make(map[uuid.UUID]bool)
	var trains []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			trains = append(trains, id)
		}
	}
	return trains, rows.Err()
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
