// utils/docnum.go
package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// DocumentNumber builds a display identifier like INV-20260301-042. The
// suffix is random, matching how numbers were issued historically; the ledger
// does not enforce global uniqueness of the display number.
func DocumentNumber(prefix string, t time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, t.Format("20060102"), seq)
}

// NewDocumentNumber issues a number for today with a random 3-digit suffix.
func NewDocumentNumber(prefix string) string {
	return DocumentNumber(prefix, time.Now(), rand.Intn(900)+100)
}
