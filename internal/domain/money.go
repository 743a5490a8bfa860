package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// FormatCents renders an amount in cents as a 2-decimal string, e.g. 4050 -> "40.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}

	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ParseCents parses a decimal amount string ("40", "40.5", "40.50") into cents.
// Amounts arrive as form fields on multipart submissions, never as floats.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	sign := int64(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
		s = s[1:]
	}

	whole, frac, found := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	cents := int64(0)
	if found {
		if len(frac) > 2 || frac == "" {
			return 0, ErrInvalidAmount
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	return sign * (units*100 + cents), nil
}
