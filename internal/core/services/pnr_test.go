package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/srgjo27/railway_reservation/internal/core/services"
)

func TestPNRGenerator(t *testing.T) {
	now := func() time.Time { return time.Unix(1_700_123_456, 0) }

	gen := services.NewPNRGeneratorWith(now, &services.FixedInts{Values: []int{0}})
	assert.Equal(t, "PNR123456AAAA", gen.Generate())

	gen = services.NewPNRGeneratorWith(now, &services.FixedInts{Values: []int{25, 26, 35, 1}})
	assert.Equal(t, "PNR123456Z09B", gen.Generate())
}

func TestPNRGenerator_Format(t *testing.T) {
	gen := services.NewPNRGenerator()
	for range 50 {
		assert.Regexp(t, `^PNR\d{6}[A-Z0-9]{4}$`, gen.Generate())
	}
}

func TestPassengerUID(t *testing.T) {
	assert.Equal(t, "31415926", services.NewPassengerUID(&services.FixedInts{Values: []int{3, 1, 4, 1, 5, 9, 2, 6}}))
	assert.Len(t, services.NewPassengerUID(&services.FixedInts{Values: []int{7}}), 8)
}
