package services

import (
	"context"
	"time"
)

type FixedInts struct {
	Values []int
	next   int
}

func (f *FixedInts) IntN(n int) int {
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)] % n
	f.next++
	return v
}

func NewPNRGeneratorWith(now func() time.Time, rnd *FixedInts) *PNRGenerator {
	return &PNRGenerator{now: now, rnd: rnd}
}

func NewPassengerUID(rnd *FixedInts) string {
	return newPassengerUID(rnd)
}

func (s *AccountService) SetHashCost(cost int) {
	s.hashCost = cost
}

func (s *BookingService) DispatchPending(ctx context.Context) {
	s.dispatchPending(ctx)
}

func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

func ValidateRequest(req any) error {
	return validateRequest(req)
}
