package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

var ErrRateLimited = errors.New("rate limit exceeded")

type SeatCache interface {
	// Confirmed returns the cached confirmed count; ok is false on a miss.
	Confirmed(ctx context.Context, trainID uuid.UUID) (count int, ok bool, err error)
	StoreConfirmed(ctx context.Context, trainID uuid.UUID, count int) error
	Invalidate(ctx context.Context, trainIDs ...uuid.UUID) error
}

type RateLimiter interface {
	// Allow returns an error wrapping ErrRateLimited once key exceeds its quota.
	Allow(ctx context.Context, key string) error
}

type Notifier interface {
	BookingCreated(ctx context.Context, event domain.BookingEvent) error
}

type TicketRenderer interface {
	RenderPDF(ticket domain.Ticket) ([]byte, error)
	RenderQR(payload string) ([]byte, error)
}
