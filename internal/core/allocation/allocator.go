// Package allocation decides the status, seat label and fare of a new
// booking from the occupancy a train had just before it.
//
// Everything here is a pure function of its inputs. Callers must read the
// counts and persist the resulting booking inside one critical section per
// train, otherwise two requests can observe the same counts.
package allocation

import (
	"fmt"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
)

const BaseFare = 1000.0

// racMarginDivisor sets the RAC margin to 10% of capacity.
const racMarginDivisor = 10

type Decision struct {
	Status     domain.BookingStatus
	SeatNumber string
	Fare       float64
}

// RACLimit is the combined Confirmed+RAC capacity of a train.
func RACLimit(totalSeats int) int {
	return totalSeats + totalSeats/racMarginDivisor
}

// WaitlistCap is the number of waitlist positions opened once RAC is full.
func WaitlistCap(totalSeats int) int {
	if totalSeats <= 0 {
		return 0
	}
	return (totalSeats + racMarginDivisor - 1) / racMarginDivisor
}

// IsFullyBooked reports whether RAC and the waitlist are both exhausted,
// in which case no booking may be created.
func IsFullyBooked(totalSeats int, counts domain.StatusCounts) bool {
	return counts.Confirmed+counts.RAC >= RACLimit(totalSeats) &&
		counts.Waitlisted >= WaitlistCap(totalSeats)
}

// Allocate picks the first status with room: Confirmed, then RAC, then Waitlisted.
func Allocate(totalSeats int, counts domain.StatusCounts, class domain.SeatClass) Decision {
	d := Decision{Fare: Fare(class)}

	switch {
	case counts.Confirmed < totalSeats:
		d.Status = domain.BookingConfirmed
		d.SeatNumber = SeatNumber(counts.Confirmed+1, class)
	case counts.Confirmed+counts.RAC < RACLimit(totalSeats):
		d.Status = domain.BookingRAC
		d.SeatNumber = fmt.Sprintf("RAC-%d", counts.RAC+1)
	default:
		d.Status = domain.BookingWaitlisted
		d.SeatNumber = fmt.Sprintf("WL-%d", counts.Waitlisted+1)
	}

	return d
}

// Fare does not depend on the booking status.
func Fare(class domain.SeatClass) float64 {
	return BaseFare * class.Spec().FareMultiplier
}

// SeatNumber labels the position-th confirmed booking of a train
// (1-based) as "{class initial}{coach}-{seat in coach}-{berth}".
func SeatNumber(position int, class domain.SeatClass) string {
	spec := class.Spec()

	coach := (position + spec.SeatsPerCoach - 1) / spec.SeatsPerCoach
	seat := position % spec.SeatsPerCoach
	if seat == 0 {
		seat = spec.SeatsPerCoach
	}
	berth := spec.Berths[(seat-1)%len(spec.Berths)]

	return fmt.Sprintf("%s%d-%d-%s", class.Initial(), coach, seat, berth)
}
