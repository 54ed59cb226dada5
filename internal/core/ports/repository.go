package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

type TrainRepository interface {
	Create(ctx context.Context, train *domain.Train) error
	GetByID(ctx context.Context, trainID uuid.UUID) (*domain.Train, error)
	Search(ctx context.Context, query domain.TrainQuery) ([]domain.Train, error)
	FindByRoute(ctx context.Context, source, destination string) (*domain.Train, error)
	List(ctx context.Context) ([]domain.Train, error)
	ConfirmedCounts(ctx context.Context, trainIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// TrainLedger is a view of one train's bookings that is only valid inside
// BookingRepository.WithTrainLock. No other booking for the same train can
// be inserted while it is in use.
type TrainLedger interface {
	Train() *domain.Train
	Counts(ctx context.Context) (domain.StatusCounts, error)
	// Insert returns domain.ErrDuplicatePNR when the PNR is taken.
	Insert(ctx context.Context, booking *domain.Booking) error
}

type BookingRepository interface {
	// WithTrainLock runs fn while holding the train's allocation lock. The
	// bookings inserted through the ledger are committed only if fn returns nil.
	WithTrainLock(ctx context.Context, trainID uuid.UUID, fn func(ctx context.Context, ledger TrainLedger) error) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.Booking, error)
	CountAll(ctx context.Context) (int, error)
	ListUnnotified(ctx context.Context, limit int) ([]domain.Booking, error)
	MarkNotified(ctx context.Context, bookingID uuid.UUID) error
	// DeleteByUser removes every booking of the user and returns the trains they were on.
	DeleteByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	AddPassenger(ctx context.Context, userID uuid.UUID, passenger domain.Passenger) error
	DeletePassenger(ctx context.Context, userID uuid.UUID, uid string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
