package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	float float64
	index int
}

func (s stubSource) Float64() float64 { return s.float }
func (s stubSource) IntN(n int) int   { return s.index % n }

func TestPick_SeniorKeepsLowerRequest(t *testing.T) {
	p := NewBerthPicker(stubSource{float: 0.99, index: 1})

	assert.Equal(t, BerthLower, p.Pick(60, BerthLower))
	assert.Equal(t, BerthSideLower, p.Pick(75, BerthSideLower))
}

func TestPick_SeniorUpperRequestIsOverridden(t *testing.T) {
	assert.Equal(t, BerthLower, NewBerthPicker(stubSource{index: 0}).Pick(64, BerthUpper))
	assert.Equal(t, BerthSideLower, NewBerthPicker(stubSource{index: 1}).Pick(64, ""))
}

func TestPick_RequestHonouredBelowThreshold(t *testing.T) {
	p := NewBerthPicker(stubSource{float: 0.59, index: 4})

	assert.Equal(t, BerthUpper, p.Pick(30, BerthUpper))
}

func TestPick_RequestReplacedAboveThreshold(t *testing.T) {
	p := NewBerthPicker(stubSource{float: 0.6, index: 4})

	assert.Equal(t, BerthSideUpper, p.Pick(30, BerthUpper))
}

func TestPick_NoRequest(t *testing.T) {
	p := NewBerthPicker(stubSource{float: 0.0, index: 1})

	assert.Equal(t, BerthMiddle, p.Pick(25, "  "))
}

func TestPick_SeniorsNeverLeaveLowerBerths(t *testing.T) {
	p := NewBerthPicker(nil)

	for i := 0; i < 500; i++ {
		got := p.Pick(60+i%30, []string{"", BerthUpper, BerthMiddle, BerthSideUpper, BerthLower}[i%5])
		assert.Contains(t, []string{BerthLower, BerthSideLower}, got)
	}
}

func TestPick_AlwaysReturnsKnownBerthWithoutRequest(t *testing.T) {
	p := NewBerthPicker(nil)

	for i := 0; i < 200; i++ {
		assert.Contains(t, allBerths, p.Pick(i%59, ""))
	}
}
