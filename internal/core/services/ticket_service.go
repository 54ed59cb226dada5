package services

import (
	"context"
	"errors"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports"
	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
)

type TicketService struct {
	bookings *BookingService
	trains   ports.TrainRepository
	renderer ports.TicketRenderer
}

func NewTicketService(bookings *BookingService, trains ports.TrainRepository, renderer ports.TicketRenderer) *TicketService {
	return &TicketService{
		bookings: bookings,
		trains:   trains,
		renderer: renderer,
	}
}

func (s *TicketService) PDF(ctx context.Context, pnr string) ([]byte, string, error) {
	ticket, err := s.ticket(ctx, pnr)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.RenderPDF(ticket)
	if err != nil {
		return nil, "", apperror.Internal("failed to render ticket", err)
	}
	return pdf, "ticket_" + ticket.Booking.PNR + ".pdf", nil
}

func (s *TicketService) QR(ctx context.Context, pnr string) ([]byte, error) {
	ticket, err := s.ticket(ctx, pnr)
	if err != nil {
		return nil, err
	}

	png, err := s.renderer.RenderQR(ticket.QRPayload())
	if err != nil {
		return nil, apperror.Internal("failed to render qr code", err)
	}
	return png, nil
}

func (s *TicketService) ticket(ctx context.Context, pnr string) (domain.Ticket, error) {
	booking, err := s.bookings.lookup(ctx, pnr)
	if err != nil {
		return domain.Ticket{}, err
	}

	train := booking.Train
	if train == nil {
		train, err = s.trains.GetByID(ctx, booking.TrainID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Ticket{}, apperror.NotFound("train")
			}
			return domain.Ticket{}, apperror.Internal("failed to load train", err)
		}
	}

	return domain.Ticket{Booking: *booking, Train: *train}, nil
}
