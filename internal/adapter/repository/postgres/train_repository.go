package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

const trainColumns = `id, train_name, source, destination, departure_time, arrival_time, total_seats, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

type TrainRepository struct {
	db *sql.DB
}

func NewTrainRepository(db *sql.DB) *TrainRepository {
	return &TrainRepository{db: db}
}

func scanTrain(row rowScanner) (*domain.Train, error) {
	var t domain.Train
	if err := row.Scan(
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
	return &t, nil
}

func (r *TrainRepository) Create(ctx context.Context, train *domain.Train) error {
	query := `
	INSERT INTO trains (` + trainColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		train.ID, train.Name, train.Source, train.Destination,
		train.DepartureTime, train.ArrivalTime, train.TotalSeats, train.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert train: %w", err)
	}
	return nil
}

func (r *TrainRepository) GetByID(ctx context.Context, trainID uuid.UUID) (*domain.Train, error) {
	query := `SELECT ` + trainColumns + ` FROM trains WHERE id = $1`

	t, err := scanTrain(r.db.QueryRowContext(ctx, query, trainID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TrainRepository) Search(ctx context.Context, q domain.TrainQuery) ([]domain.Train, error) {
	query := `
	SELECT ` + trainColumns + `
	FROM trains
	WHERE LOWER(source) = LOWER($1) AND LOWER(destination) = LOWER($2)
	`
	args := []any{q.Source, q.Destination}

	if from, to, ok := q.Filter.Window(); ok {
		query += ` AND departure_time >= $3 AND departure_time < $4`
		args = append(args, from, to)
	}
	query += ` ORDER BY departure_time`

	return r.list(ctx, query, args...)
}

func (r *TrainRepository) FindByRoute(ctx context.Context, source, destination string) (*domain.Train, error) {
	query := `
	SELECT ` + trainColumns + `
	FROM trains
	WHERE LOWER(source) = LOWER($1) AND LOWER(destination) = LOWER($2)
	ORDER BY created_at
	LIMIT 1
	`

	t, err := scanTrain(r.db.QueryRowContext(ctx, query, source, destination))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TrainRepository) List(ctx context.Context) ([]domain.Train, error) {
	return r.list(ctx, `SELECT `+trainColumns+` FROM trains ORDER BY train_name`)
}

func (r *TrainRepository) list(ctx context.Context, query string, args ...any) ([]domain.Train, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trains []domain.Train
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, err
		}
		trains = append(trains, *t)
	}
	return trains, rows.Err()
}

func (r *TrainRepository) ConfirmedCounts(ctx context.Context, trainIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	ids := make([]string, 0, len(trainIDs))
	for _, id := range trainIDs {
		ids = append(ids, id.String())
	}

	query := `
	SELECT train_id, COUNT(*)
	FROM bookings
	WHERE train_id = ANY($1::uuid[]) AND status = $2
	GROUP BY train_id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids), domain.BookingConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[uuid.UUID]int, len(trainIDs))
	for rows.Next() {
		var id uuid.UUID
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		counts[id] = n
	}
	return counts, rows.Err()
}
