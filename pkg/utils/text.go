package utils

import (
	"fmt"
	"strings"
)

// ToUpperClean uppercases free-text identity fields and strips leading and
// trailing whitespace. Internal whitespace is kept verbatim, so
// "  banco  ganadero  " becomes "BANCO  GANADERO".
func ToUpperClean(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidateAmount validates a deposit amount
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive: %.2f", amount)
	}
	return nil
}
