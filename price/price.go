// Package price provides minor-unit price arithmetic and locale-aware
// formatting for display layers. All amounts are int64 minor currency units
// (cents); floating point never enters the arithmetic path.
package price

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Line returns the subtotal for quantity units at unitMinor each.
func Line(quantity int, unitMinor int64) int64 {
	return int64(quantity) * unitMinor
}

// Sum totals a set of line amounts.
func Sum(lines ...int64) int64 {
	var total int64
	for _, l := range lines {
		total += l
	}
	return total
}

// Split separates a minor-unit amount into whole units and remaining cents.
// The cents component is always non-negative.
func Split(minor int64) (units int64, cents int64) {
	units = minor / 100
	cents = minor % 100
	if cents < 0 {
		cents = -cents
	}
	return units, cents
}

// Formatter renders minor-unit amounts for one locale and currency.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter creates a Formatter for the given BCP 47 locale tag and ISO
// 4217 currency code.
func NewFormatter(locale string, iso string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("price: parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return nil, fmt.Errorf("price: parse currency %q: %w", iso, err)
	}
	return &Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Format renders a minor-unit amount with its currency symbol, for example
// "$ 12.34".
func (f *Formatter) Format(minor int64) string {
	units, cents := Split(minor)
	sign := ""
	if minor < 0 {
		sign = "-"
		if units < 0 {
			units = -units
		}
	}
	return f.printer.Sprintf("%v%s%d.%02d", currency.Symbol(f.unit), sign, units, cents)
}

// Code returns the formatter's ISO 4217 currency code.
func (f *Formatter) Code() string {
	return f.unit.String()
}
