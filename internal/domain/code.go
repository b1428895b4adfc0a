package domain

import (
	"fmt"
	"math/rand"
	"time"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const codeSuffixLength = 6

// NewConsultationCode produces a public ticket identifier of the form
// "SOL-YYYYMM-XXXXXX", where YYYYMM is the calendar year and month of the
// given time and the suffix is drawn uniformly from [A-Z0-9].
//
// The generator performs no uniqueness check; the month-plus-suffix space is
// treated as collision-free in practice, and the tickets table carries a
// unique constraint as the backstop.
func NewConsultationCode(now time.Time) string {
	return fmt.Sprintf("SOL-%04d%02d-%s", now.Year(), int(now.Month()), randomSuffix())
}

func randomSuffix() string {
	b := make([]byte, codeSuffixLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
