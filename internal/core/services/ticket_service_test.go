package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/core/ports/mocks"
	"github.com/srgjo27/railway_reservation/internal/core/services"
)

func newTicketFixture(t *testing.T) (*services.TicketService, *bookingFixture, *mocks.TicketRenderer) {
	t.Helper()

	f := newBookingFixture(t, 72)
	renderer := mocks.NewTicketRenderer(t)
	return services.NewTicketService(f.service, f.trains, renderer), f, renderer
}

func TestTicketPDF(t *testing.T) {
	svc, f, renderer := newTicketFixture(t)
	ctx := context.Background()

	booking := &domain.Booking{
		ID:            uuid.New(),
		PNR:           "PNR654321WXYZ",
		TrainID:       f.train.ID,
		PassengerName: "Asha",
		Status:        domain.BookingConfirmed,
		SeatNumber:    "S1-1-SL",
		Train:         f.train,
	}
	f.bookings.On("GetByPNR", ctx, "PNR654321WXYZ").Return(booking, nil)
	renderer.On("RenderPDF", mock.MatchedBy(func(tk domain.Ticket) bool {
		return tk.Booking.PNR == booking.PNR && tk.Train.Name == "Rajdhani Express"
	})).Return([]byte("%PDF-1.3"), nil)

	pdf, filename, err := svc.PDF(ctx, " pnr654321wxyz ")
	require.NoError(t, err)
	assert.Equal(t, "ticket_PNR654321WXYZ.pdf", filename)
	assert.Equal(t, []byte("%PDF-1.3"), pdf)

	f.trains.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTicketQR_LoadsTrainWhenNotJoined(t *testing.T) {
	svc, f, renderer := newTicketFixture(t)
	ctx := context.Background()

	booking := &domain.Booking{ID: uuid.New(), PNR: "PNR111111AAAA", TrainID: f.train.ID, PassengerName: "Asha"}
	f.bookings.On("GetByPNR", ctx, booking.PNR).Return(booking, nil)
	f.trains.On("GetByID", ctx, f.train.ID).Return(f.train, nil)
	renderer.On("RenderQR", "PNR:PNR111111AAAA|Asha|Rajdhani Express").Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := svc.QR(ctx, booking.PNR)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)
}

func TestTicket_Errors(t *testing.T) {
	svc, f, renderer := newTicketFixture(t)
	ctx := context.Background()

	f.bookings.On("GetByPNR", ctx, "PNR000000NONE").Return(nil, domain.ErrNotFound)
	_, _, err := svc.PDF(ctx, "PNR000000NONE")
	assert.Equal(t, http.StatusNotFound, statusOf(err))

	_, err = svc.QR(ctx, "   ")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	booking := &domain.Booking{PNR: "PNR222222BBBB", Train: f.train}
	f.bookings.On("GetByPNR", ctx, booking.PNR).Return(booking, nil)
	renderer.On("RenderPDF", mock.Anything).Return(nil, errors.New("font missing"))

	_, _, err = svc.PDF(ctx, booking.PNR)
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
}
