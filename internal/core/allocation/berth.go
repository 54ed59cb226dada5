package allocation

import (
	"math/rand/v2"
	"strings"
)

const (
	BerthLower     = "Lower"
	BerthMiddle    = "Middle"
	BerthUpper     = "Upper"
	BerthSideLower = "Side Lower"
	BerthSideUpper = "Side Upper"
)

const (
	seniorAge       = 60
	honorRequestPct = 0.6
)

var (
	allBerths    = []string{BerthLower, BerthMiddle, BerthUpper, BerthSideLower, BerthSideUpper}
	seniorBerths = []string{BerthLower, BerthSideLower}
)

// RandomSource is the subset of *rand.Rand the picker needs.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// BerthPicker derives the stated berth preference stored on a booking.
// It is advisory only; the seat label stays authoritative.
type BerthPicker struct {
	rnd RandomSource
}

func NewBerthPicker(rnd RandomSource) *BerthPicker {
	if rnd == nil {
		rnd = globalSource{}
	}
	return &BerthPicker{rnd: rnd}
}

// Pick keeps seniors on lower berths and honours other requests 60% of the time.
func (p *BerthPicker) Pick(age int, requested string) string {
	requested = strings.TrimSpace(requested)

	if age >= seniorAge {
		if requested == BerthLower || requested == BerthSideLower {
			return requested
		}
		return seniorBerths[p.rnd.IntN(len(seniorBerths))]
	}

	if requested != "" && p.rnd.Float64() < honorRequestPct {
		return requested
	}
	return allBerths[p.rnd.IntN(len(allBerths))]
}
