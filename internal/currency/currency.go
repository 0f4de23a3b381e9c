// Package currency formats amounts and dates the way the dashboard shows them:
// French locale, CFA francs without decimals, euros pegged at a fixed rate.
package currency

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// XOFPerEUR is the fixed CFA franc peg to the euro.
const XOFPerEUR = 655.957

// Currency suffixes appended after the number.
const (
	XOFSuffix = "FCFA"
	EURSuffix = "€"
)

// ErrInvalidAmount is returned when a formatted amount cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

var printer = message.NewPrinter(language.French)

// EURToXOF converts euros to CFA francs.
func EURToXOF(eur float64) float64 {
	return eur * XOFPerEUR
}

// XOFToEUR converts CFA francs to euros.
func XOFToEUR(xof float64) float64 {
	return xof / XOFPerEUR
}

// FormatXOF renders amount in CFA francs, rounded to the nearest whole franc,
// with French digit grouping: "1 250 000 FCFA".
func FormatXOF(amount float64) string {
	whole := int64(math.Round(amount))
	return printer.Sprint(number.Decimal(whole)) + " " + XOFSuffix
}

// FormatEUR renders amount in euros with two decimals: "1 234,50 €".
func FormatEUR(amount float64) string {
	cents := math.Round(amount*100) / 100
	return printer.Sprint(number.Decimal(cents, number.Scale(2))) + " " + EURSuffix
}

// ParseXOF reads back an amount produced by FormatXOF. Grouping separators
// and the currency suffix are ignored, and any decimal part after a comma is
// dropped.
func ParseXOF(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, XOFSuffix)
	s = strings.TrimSuffix(strings.TrimSpace(s), "F CFA")

	var digits strings.Builder
	negative := false

scan:
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case r == '-' || r == '\u2212':
			if digits.Len() > 0 || negative {
				return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
			}
			negative = true
		case unicode.IsSpace(r) || r == ' ' || r == '.':
			// grouping separators
		case r == ',':
			break scan
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}

	if digits.Len() == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}
