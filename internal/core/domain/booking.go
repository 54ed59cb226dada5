package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingRAC        BookingStatus = "RAC"
	BookingWaitlisted BookingStatus = "Waitlisted"
)

type Booking struct {
	ID              uuid.UUID
	PNR             string
	TrainID         uuid.UUID
	UserID          uuid.UUID
	PassengerName   string
	PassengerAge    int
	SeatClass       SeatClass
	BerthPreference string
	Status          BookingStatus
	SeatNumber      string
	Fare            float64
	ContactEmail    string
	Notified        bool
	CreatedAt       time.Time

	// Train is populated by reads that join the train row.
	Train *Train
}

// StatusCounts is the per-status occupancy of one train.
type StatusCounts struct {
	Confirmed  int
	RAC        int
	Waitlisted int
}

func (c *StatusCounts) Add(status BookingStatus) {
	switch status {
	case BookingConfirmed:
		c.Confirmed++
	case BookingRAC:
		c.RAC++
	case BookingWaitlisted:
		c.Waitlisted++
	}
}

// BookingEvent is published once a booking has been persisted.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	PNR           string    `json:"pnr"`
	Email         string    `json:"email"`
	PassengerName string    `json:"passenger_name"`
	PassengerAge  int       `json:"passenger_age"`
	TrainName     string    `json:"train_name"`
	Route         string    `json:"route"`
	DepartureTime string    `json:"departure_time"`
	SeatNumber    string    `json:"seat_number"`
	SeatClass     string    `json:"seat_class"`
	Status        string    `json:"status"`
	Fare          float64   `json:"fare"`
	BookedAt      time.Time `json:"booked_at"`
}

// Ticket is the printable view of a booking.
type Ticket struct {
	Booking Booking
	Train   Train
}

func (t Ticket) QRPayload() string {
	return "PNR:" + t.Booking.PNR + "|" + t.Booking.PassengerName + "|" + t.Train.Name
}
