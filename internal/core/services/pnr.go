package services

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	pnrPrefix    = "PNR"
	pnrAlphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pnrTimeChars = 6
	pnrRandChars = 4
	uidDigits    = 8
)

type intSource interface {
	IntN(n int) int
}

type globalIntSource struct{}

func (globalIntSource) IntN(n int) int { return rand.IntN(n) }

// PNRGenerator builds "PNR" + the last six digits of the unix time + four
// random characters. Uniqueness is enforced by storage, not here.
type PNRGenerator struct {
	now func() time.Time
	rnd intSource
}

func NewPNRGenerator() *PNRGenerator {
	return &PNRGenerator{now: time.Now, rnd: globalIntSource{}}
}

func (g *PNRGenerator) Generate() string {
	secs := strconv.FormatInt(g.now().Unix(), 10)
	if len(secs) > pnrTimeChars {
		secs = secs[len(secs)-pnrTimeChars:]
	}

	var b strings.Builder
	b.Grow(len(pnrPrefix) + pnrTimeChars + pnrRandChars)
	b.WriteString(pnrPrefix)
	b.WriteString(secs)
	for i := 0; i < pnrRandChars; i++ {
		b.WriteByte(pnrAlphabet[g.rnd.IntN(len(pnrAlphabet))])
	}
	return b.String()
}

func newPassengerUID(rnd intSource) string {
	buf := make([]byte, uidDigits)
	for i := range buf {
		buf[i] = byte('0' + rnd.IntN(10))
	}
	return string(buf)
}
