package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/railway_reservation/internal/core/allocation"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTrain(t *testing.T, store *memory.Store, seats int) domain.Train {
	t.Helper()
	train := domain.Train{
		ID:            uuid.New(),
		Name:          "Rajdhani Express",
		Source:        "New Delhi",
		Destination:   "Mumbai",
		DepartureTime: "16:30",
		ArrivalTime:   "08:30",
		TotalSeats:    seats,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, store.Trains().Create(context.Background(), &train))
	return train
}

func TestTrainRepository_SearchIsCaseInsensitiveAndFiltered(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	evening := seedTrain(t, store, 10)

	morning := evening
	morning.ID = uuid.New()
	morning.DepartureTime = "06:00"
	require.NoError(t, store.Trains().Create(ctx, &morning))

	all, err := store.Trains().Search(ctx, domain.TrainQuery{Source: "new delhi", Destination: "MUMBAI"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "06:00", all[0].DepartureTime)

	filtered, err := store.Trains().Search(ctx, domain.TrainQuery{Source: "New Delhi", Destination: "Mumbai", Filter: domain.TimeFilterEvening})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, evening.ID, filtered[0].ID)
}

func TestBookingRepository_WithTrainLock(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	train := seedTrain(t, store, 5)
	repo := store.Bookings()

	t.Run("unknown train", func(t *testing.T) {
		err := repo.WithTrainLock(ctx, uuid.New(), func(context.Context, ports.TrainLedger) error { return nil })
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("rolled back on error", func(t *testing.T) {
		err := repo.WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
			require.NoError(t, l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000001ABCD", TrainID: train.ID, Status: domain.BookingConfirmed}))
			return fmt.Errorf("boom")
		})
		require.Error(t, err)

		_, err = repo.GetByPNR(ctx, "PNR000001ABCD")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("duplicate pnr", func(t *testing.T) {
		insert := func() error {
			return repo.WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
				return l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000002WXYZ", TrainID: train.ID, Status: domain.BookingConfirmed})
			})
		}
		require.NoError(t, insert())
		assert.ErrorIs(t, insert(), domain.ErrDuplicatePNR)

		b, err := repo.GetByPNR(ctx, "PNR000002WXYZ")
		require.NoError(t, err)
		require.NotNil(t, b.Train)
		assert.Equal(t, train.Name, b.Train.Name)
	})

	t.Run("commit conflict keeps nothing from the batch", func(t *testing.T) {
		other := seedTrain(t, store, 5)

		err := repo.WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
			require.NoError(t, l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000003AAAA", TrainID: train.ID, Status: domain.BookingConfirmed}))
			require.NoError(t, l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000003BBBB", TrainID: train.ID, Status: domain.BookingConfirmed}))

			// Another train commits the second PNR while this batch is pending.
			return repo.WithTrainLock(ctx, other.ID, func(ctx context.Context, l ports.TrainLedger) error {
				return l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000003BBBB", TrainID: other.ID, Status: domain.BookingConfirmed})
			})
		})
		assert.ErrorIs(t, err, domain.ErrDuplicatePNR)

		_, err = repo.GetByPNR(ctx, "PNR000003AAAA")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		b, err := repo.GetByPNR(ctx, "PNR000003BBBB")
		require.NoError(t, err)
		assert.Equal(t, other.ID, b.TrainID)

		counts, err := store.Trains().ConfirmedCounts(ctx, []uuid.UUID{train.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, counts[train.ID])
	})
}

func TestBookingRepository_ConcurrentAllocationNeverOverbooks(t *testing.T) {
	const seats = 20
	const attempts = 60

	store := memory.NewStore()
	ctx := context.Background()
	train := seedTrain(t, store, seats)
	repo := store.Bookings()

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
				counts, err := l.Counts(ctx)
				if err != nil {
					return err
				}
				if allocation.IsFullyBooked(seats, counts) {
					return domain.ErrTrainFullyBooked
				}
				d := allocation.Allocate(seats, counts, domain.SeatClassSleeper)
				return l.Insert(ctx, &domain.Booking{
					ID:         uuid.New(),
					PNR:        fmt.Sprintf("PNR%06dTEST", i),
					TrainID:    train.ID,
					Status:     d.Status,
					SeatNumber: d.SeatNumber,
					Fare:       d.Fare,
				})
			})
		}(i)
	}
	wg.Wait()

	var counts domain.StatusCounts
	labels := map[string]bool{}
	all, err := repo.ListAll(ctx, attempts, 0)
	require.NoError(t, err)
	for _, b := range all {
		counts.Add(b.Status)
		if b.Status != domain.BookingWaitlisted {
			assert.False(t, labels[b.SeatNumber], "seat %s allocated twice", b.SeatNumber)
			labels[b.SeatNumber] = true
		}
	}

	assert.Equal(t, seats, counts.Confirmed)
	assert.Equal(t, allocation.RACLimit(seats)-seats, counts.RAC)
	assert.Equal(t, allocation.WaitlistCap(seats), counts.Waitlisted)

	cached, err := store.Trains().ConfirmedCounts(ctx, []uuid.UUID{train.ID})
	require.NoError(t, err)
	assert.Equal(t, seats, cached[train.ID])
}

func TestBookingRepository_ListingAndNotification(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	train := seedTrain(t, store, 10)
	repo := store.Bookings()
	user := uuid.New()

	for i := range 3 {
		require.NoError(t, repo.WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
			return l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: fmt.Sprintf("PNR00000%dABCD", i), TrainID: train.ID, UserID: user, Status: domain.BookingConfirmed})
		}))
	}

	page, err := repo.ListByUser(ctx, user, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "PNR000002ABCD", page[0].PNR)

	rest, err := repo.ListByUser(ctx, user, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	n, err := repo.CountByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pending, err := repo.ListUnnotified(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	require.NoError(t, repo.MarkNotified(ctx, pending[0].ID))

	pending, err = repo.ListUnnotified(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	trains, err := repo.DeleteByUser(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{train.ID}, trains)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUserRepository(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	users := store.Users()

	u := &domain.User{ID: uuid.New(), Username: "asha", Role: domain.RoleUser}
	require.NoError(t, users.Create(ctx, u))
	assert.ErrorIs(t, users.Create(ctx, &domain.User{ID: uuid.New(), Username: "asha"}), domain.ErrDuplicateUsername)

	require.NoError(t, users.AddPassenger(ctx, u.ID, domain.Passenger{UID: "12345678", Name: "Ravi", Age: 40}))
	got, err := users.GetByUsername(ctx, "asha")
	require.NoError(t, err)
	require.Len(t, got.SavedPassengers, 1)

	assert.ErrorIs(t, users.DeletePassenger(ctx, u.ID, "00000000"), domain.ErrNotFound)
	require.NoError(t, users.DeletePassenger(ctx, u.ID, "12345678"))

	require.NoError(t, users.UpdatePassword(ctx, u.ID, "hash"))
	got, err = users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.Empty(t, got.SavedPassengers)

	require.NoError(t, users.Delete(ctx, u.ID))
	_, err = users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_DeleteTakesLateBookings(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	train := seedTrain(t, store, 5)

	u := &domain.User{ID: uuid.New(), Username: "ravi", Role: domain.RoleUser}
	require.NoError(t, store.Users().Create(ctx, u))

	trains, err := store.Bookings().DeleteByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, trains)

	// A booking lands between the two deletes.
	err = store.Bookings().WithTrainLock(ctx, train.ID, func(ctx context.Context, l ports.TrainLedger) error {
		return l.Insert(ctx, &domain.Booking{ID: uuid.New(), PNR: "PNR000009LATE", TrainID: train.ID, UserID: u.ID, Status: domain.BookingConfirmed})
	})
	require.NoError(t, err)

	require.NoError(t, store.Users().Delete(ctx, u.ID))

	n, err := store.Bookings().CountByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
