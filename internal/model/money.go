package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidAmount indicates an amount that could not be parsed or that is
// not a positive value.
var ErrInvalidAmount = errors.New("invalid amount")

// Amounts are stored as integer cents. Major-unit floats only appear at the
// presentation boundary: multiplied by 100 with half-up rounding on the way
// in, divided by 100 on the way out. Repeated edits never drift.

// Cents converts a non-negative major-unit amount to cents, rounding
// half-up on the third decimal place.
func Cents(major float64) int64 {
	if major <= 0 {
		return 0
	}
	return int64(math.Floor(major*100 + 0.5))
}

// MajorUnits converts cents back to a major-unit float for display.
func MajorUnits(cents int64) float64 {
	return float64(cents) / 100.0
}

// FormatCents renders cents as a fixed two-decimal major-unit string.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%.2f", MajorUnits(cents))
}

// ParseCents parses a user-supplied decimal string ("12.34", "12,34") into
// cents. The third decimal digit rounds half-up. Zero, negative and signed
// values are rejected.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = math.MaxInt64 / 100
	if whole > maxSafe {
		return 0, ErrInvalidAmount
	}

	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := whole*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
