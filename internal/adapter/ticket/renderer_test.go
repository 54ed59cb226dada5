package ticket_test

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/railway_reservation/internal/adapter/ticket"
	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderer_RenderQR(t *testing.T) {
	png, err := ticket.NewRenderer().RenderQR("PNR:PNR123456ABCD|Asha|Rajdhani Express")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderer_RenderPDF(t *testing.T) {
	tk := domain.Ticket{
		Booking: domain.Booking{
			ID:            uuid.New(),
			PNR:           "PNR123456ABCD",
			PassengerName: "Asha",
			PassengerAge:  34,
			SeatClass:     domain.SeatClassAC2Tier,
			Status:        domain.BookingWaitlisted,
			SeatNumber:    "WL-1",
			Fare:          2000,
		},
		Train: domain.Train{Name: "Rajdhani Express", Source: "New Delhi", Destination: "Mumbai"},
	}

	pdf, err := ticket.NewRenderer().RenderPDF(tk)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}
