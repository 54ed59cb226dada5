package notifier

import (
	"context"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

// LogNotifier is used when no broker is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.Discard()
	}
	return &LogNotifier{log: log.With("component", "log_notifier")}
}

func (n *LogNotifier) BookingCreated(_ context.Context, event domain.BookingEvent) error {
	n.log.Info("booking created",
		"pnr", event.PNR,
		"status", event.Status,
		"seat_number", event.SeatNumber,
		"train", event.TrainName,
		"email", event.Email,
	)
	return nil
}
