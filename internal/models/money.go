package models

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// leadingNumber matches the numeric prefix of an amount string, so that
// trailing text such as "Dr" or a currency code is ignored.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount parses a statement amount. Surrounding whitespace and thousands
// separators (commas) are removed. Unparseable input yields zero.
func ParseAmount(amountStr string) decimal.Decimal {
	amount := strings.TrimSpace(amountStr)
	if amount == "" {
		return decimal.Zero
	}
	amount = strings.ReplaceAll(amount, ",", "")

	match := leadingNumber.FindString(amount)
	if match == "" {
		return decimal.Zero
	}
	match = canonicalNumber(match)
	dec, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

// ParseCellAmount parses the amount held by a cell.
func ParseCellAmount(c Cell) decimal.Decimal {
	if c.Kind == CellNumber {
		return decimal.NewFromFloat(c.Number)
	}
	return ParseAmount(c.AsText())
}

// canonicalNumber rewrites forms like "+5", "5." and "-.5" into what
// decimal.NewFromString accepts.
func canonicalNumber(s string) string {
	sign := ""
	switch {
	case strings.HasPrefix(s, "-"):
		sign, s = "-", s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i:]
	}
	mantissa = strings.TrimSuffix(mantissa, ".")
	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	return sign + mantissa + exponent
}
