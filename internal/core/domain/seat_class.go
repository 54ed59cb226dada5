package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type SeatClass string

const (
	SeatClassSleeper  SeatClass = "Sleeper"
	SeatClassAC3Tier  SeatClass = "AC 3 Tier"
	SeatClassAC2Tier  SeatClass = "AC 2 Tier"
	SeatClassAC1Class SeatClass = "AC 1st Class"
)

// ClassSpec holds the per-class coach layout and pricing.
type ClassSpec struct {
	SeatsPerCoach  int
	FareMultiplier float64
	Berths         []string
}

var defaultClassSpec = ClassSpec{
	SeatsPerCoach:  72,
	FareMultiplier: 1.0,
	Berths:         []string{"S"},
}

var classSpecs = map[SeatClass]ClassSpec{
	SeatClassSleeper: {
		SeatsPerCoach:  72,
		FareMultiplier: 1.0,
		Berths:         []string{"SL", "LB", "MB", "UB", "SL", "SU"},
	},
	SeatClassAC3Tier: {
		SeatsPerCoach:  64,
		FareMultiplier: 1.5,
		Berths:         []string{"LB", "MB", "UB", "SL", "SU"},
	},
	SeatClassAC2Tier: {
		SeatsPerCoach:  46,
		FareMultiplier: 2.0,
		Berths:         []string{"LB", "UB", "SL", "SU"},
	},
	SeatClassAC1Class: {
		SeatsPerCoach:  18,
		FareMultiplier: 3.0,
		Berths:         []string{"LB", "UB"},
	},
}

func init() {
	if err := validateClassSpecs(); err != nil {
		panic(err)
	}
}

func validateClassSpecs() error {
	specs := map[SeatClass]ClassSpec{"": defaultClassSpec}
	for class, spec := range classSpecs {
		specs[class] = spec
	}

	for class, spec := range specs {
		if spec.SeatsPerCoach <= 0 {
			return fmt.Errorf("seat class %q: seats per coach must be positive", class)
		}
		if spec.FareMultiplier <= 0 {
			return fmt.Errorf("seat class %q: fare multiplier must be positive", class)
		}
		if len(spec.Berths) == 0 {
			return fmt.Errorf("seat class %q: berth cycle is empty", class)
		}
	}
	return nil
}

// SeatClasses lists the known classes, cheapest first.
func SeatClasses() []SeatClass {
	return []SeatClass{SeatClassSleeper, SeatClassAC3Tier, SeatClassAC2Tier, SeatClassAC1Class}
}

// ParseSeatClass trims the input and defaults an empty value to Sleeper.
// Unrecognised names are kept as-is; Spec falls back for them.
func ParseSeatClass(s string) SeatClass {
	s = strings.TrimSpace(s)
	if s == "" {
		return SeatClassSleeper
	}
	return SeatClass(s)
}

func (c SeatClass) Known() bool {
	_, ok := classSpecs[c]
	return ok
}

// Spec returns the layout for c, or the default layout when c is unknown.
func (c SeatClass) Spec() ClassSpec {
	if spec, ok := classSpecs[c]; ok {
		return spec
	}
	return defaultClassSpec
}

// Initial is the upper-cased first letter used as the coach prefix.
func (c SeatClass) Initial() string {
	r, _ := utf8.DecodeRuneInString(string(c))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}
