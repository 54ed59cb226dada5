package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/railway_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trainCols = []string{"id", "train_name", "source", "destination", "departure_time", "arrival_time", "total_seats", "created_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func trainRow(id uuid.UUID, seats int) *sqlmock.Rows {
	return sqlmock.NewRows(trainCols).
		AddRow(id.String(), "Rajdhani Express", "New Delhi", "Mumbai", "16:30", "08:30", seats, time.Now())
}

func TestBookingRepository_WithTrainLock(t *testing.T) {
	ctx := context.Background()
	trainID := uuid.New()
	lockQuery := regexp.QuoteMeta("FROM trains WHERE id = $1 FOR UPDATE")

	t.Run("allocates inside one transaction", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(trainID).WillReturnRows(trainRow(trainID, 50))
		mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*)")).
			WithArgs(trainID).
			WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
				AddRow("Confirmed", 50).
				AddRow("RAC", 2))
		mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (pnr_number) DO NOTHING")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.WithTrainLock(ctx, trainID, func(ctx context.Context, l ports.TrainLedger) error {
			assert.Equal(t, 50, l.Train().TotalSeats)

			counts, err := l.Counts(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusCounts{Confirmed: 50, RAC: 2}, counts)

			return l.Insert(ctx, &domain.Booking{
				ID:         uuid.New(),
				PNR:        "PNR123456ABCD",
				TrainID:    trainID,
				UserID:     uuid.New(),
				SeatClass:  domain.SeatClassSleeper,
				Status:     domain.BookingRAC,
				SeatNumber: "RAC-3",
				Fare:       1000,
				CreatedAt:  time.Now(),
			})
		})
		require.NoError(t, err)
	})

	t.Run("unknown train rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(trainID).WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.WithTrainLock(ctx, trainID, func(context.Context, ports.TrainLedger) error {
			t.Fatal("callback must not run")
			return nil
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("pnr conflict surfaces as duplicate", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(trainID).WillReturnRows(trainRow(trainID, 10))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.WithTrainLock(ctx, trainID, func(ctx context.Context, l ports.TrainLedger) error {
			return l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR123456ABCD", TrainID: trainID})
		})
		assert.ErrorIs(t, err, domain.ErrDuplicatePNR)
	})

	t.Run("callback error rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := postgres.NewBookingRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).WithArgs(trainID).WillReturnRows(trainRow(trainID, 10))
		mock.ExpectRollback()

		err := repo.WithTrainLock(ctx, trainID, func(context.Context, ports.TrainLedger) error {
			return domain.ErrTrainFullyBooked
		})
		assert.ErrorIs(t, err, domain.ErrTrainFullyBooked)
	})
}

func TestBookingRepository_GetByPNR(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := postgres.NewBookingRepository(db)

	cols := []string{
		"id", "pnr_number", "train_id", "user_id", "passenger_name", "passenger_age",
		"seat_class", "berth_preference", "status", "seat_number", "fare",
		"contact_email", "notified", "created_at",
		"t_id", "train_name", "source", "destination", "departure_time", "arrival_time",
		"total_seats", "t_created_at",
	}
	trainID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.pnr_number = $1")).
		WithArgs("PNR123456ABCD").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			uuid.NewString(), "PNR123456ABCD", trainID.String(), uuid.NewString(), "Asha", 34,
			"AC 3 Tier", "Lower", "Confirmed", "A1-1-LB", 1500.0,
			"asha@example.com", false, now,
			trainID.String(), "Rajdhani Express", "New Delhi", "Mumbai", "16:30", "08:30",
			50, now,
		))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.pnr_number = $1")).
		WithArgs("PNR000000ZZZZ").
		WillReturnError(sql.ErrNoRows)

	b, err := repo.GetByPNR(ctx, "PNR123456ABCD")
	require.NoError(t, err)
	assert.Equal(t, domain.SeatClassAC3Tier, b.SeatClass)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 1500.0, b.Fare)
	require.NotNil(t, b.Train)
	assert.Equal(t, trainID, b.Train.ID)

	_, err = repo.GetByPNR(ctx, "PNR000000ZZZZ")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_DeleteByUserReturnsDistinctTrains(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBookingRepository(db)
	userID, a, b := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM bookings WHERE user_id = $1 RETURNING train_id")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"train_id"}).
			AddRow(a.String()).
			AddRow(b.String()).
			AddRow(a.String()))

	trains, err := repo.DeleteByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, trains)
}

func TestBookingRepository_MarkNotified(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBookingRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET notified = TRUE")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkNotified(context.Background(), id), domain.ErrNotFound)
}

func TestTrainRepository_Search(t *testing.T) {
	ctx := context.Background()
	db, mock := newMock(t)
	repo := postgres.NewTrainRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("AND departure_time >= $3 AND departure_time < $4 ORDER BY departure_time")).
		WithArgs("New Delhi", "Mumbai", "17:00", "24:00").
		WillReturnRows(trainRow(id, 50))

	trains, err := repo.Search(ctx, domain.TrainQuery{Source: "New Delhi", Destination: "Mumbai", Filter: domain.TimeFilterEvening})
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, id, trains[0].ID)
}

func TestTrainRepository_ConfirmedCounts(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewTrainRepository(db)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE train_id = ANY($1::uuid[]) AND status = $2")).
		WithArgs(sqlmock.AnyArg(), "Confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"train_id", "count"}).AddRow(a.String(), 7))

	counts, err := repo.ConfirmedCounts(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Equal(t, 7, counts[a])
	assert.Zero(t, counts[b])
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("connection reset"))

	user := &domain.User{ID: uuid.New(), Username: "asha", CreatedAt: time.Now()}
	assert.ErrorIs(t, repo.Create(context.Background(), user), domain.ErrDuplicateUsername)

	err := repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateUsername)
}

func TestUserRepository_GetByUsernameLoadsPassengers(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("asha").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "role", "email", "phone_number", "created_at"}).
			AddRow(id.String(), "asha", "hash", "user", "", "", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM saved_passengers")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"uid", "name", "age", "berth_preference"}).
			AddRow("12345678", "Ravi", 61, "Lower"))

	u, err := repo.GetByUsername(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	require.Len(t, u.SavedPassengers, 1)
	assert.Equal(t, "Ravi", u.SavedPassengers[0].Name)
}

func TestUserRepository_DeletePassengerMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewUserRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM saved_passengers")).
		WithArgs(id, "00000000").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.DeletePassenger(context.Background(), id, "00000000"), domain.ErrNotFound)
}

func TestMigrate(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS trains")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, postgres.Migrate(context.Background(), db))
}

func TestSchema_BookingConstraints(t *testing.T) {
	assert.Regexp(t, fmt.Sprintf(`seat_class\s+VARCHAR\(%d\)\s+NOT NULL`, postgres.SeatClassWidth), postgres.Schema)
	assert.Contains(t, postgres.Schema, fmt.Sprintf("ALTER COLUMN seat_class TYPE VARCHAR(%d)", postgres.SeatClassWidth))

	// Deleting a user must never be blocked by bookings inserted concurrently.
	assert.Regexp(t, `CREATE TABLE IF NOT EXISTS bookings \([^;]*user_id\s+UUID\s+NOT NULL REFERENCES users \(id\) ON DELETE CASCADE`, postgres.Schema)
	assert.Contains(t, postgres.Schema, "FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE")
}
