package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UnparsablePriceError keeps the original text so the caller can decide to
// drop, default, or abort instead of silently pricing an item at zero.
type UnparsablePriceError struct {
	Raw string
}

func (e *UnparsablePriceError) Error() string {
	return fmt.Sprintf("unparsable price %q", e.Raw)
}

// CleanPrice parses a raw price field tolerantly: currency symbols and other
// stray characters are stripped, European separators ("1.234,56") are
// normalized, and a lone comma is read as a decimal point.
func CleanPrice(raw string) (float64, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0, &UnparsablePriceError{Raw: raw}
	}

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")
	switch {
	case hasComma && hasDot:
		// European convention: dots group thousands, comma is decimal.
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case hasComma:
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, &UnparsablePriceError{Raw: raw}
	}
	return v, nil
}
