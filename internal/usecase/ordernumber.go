package usecase

import (
	"fmt"
	"regexp"
	"time"
)

// Order numbers look like KA-2025-00147: dealership prefix, year, sequence.
var orderNumberPattern = regexp.MustCompile(`^KA-\d{4}-\d{5}$`)

// FormatOrderNumber renders the human-facing reference code for an order.
func FormatOrderNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("KA-%d-%05d", t.Year(), seq)
}

// ValidateOrderNumber checks the reference code shape.
func ValidateOrderNumber(number string) bool {
	return orderNumberPattern.MatchString(number)
}
