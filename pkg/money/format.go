package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// symbols covers the currencies the studio invoices in; anything else falls back to its ISO code.
var symbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
}

// Formatter renders cents using a locale's separators and a currency symbol.
type Formatter struct {
	tag     language.Tag
	unit    currency.Unit
	symbol  string
	decimal string
	printer *message.Printer
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217 currency code.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	symbol, ok := symbols[unit.String()]
	if !ok {
		symbol = unit.String()
	}
	printer := message.NewPrinter(tag)
	return &Formatter{
		tag:     tag,
		unit:    unit,
		symbol:  symbol,
		decimal: decimalSeparator(printer),
		printer: printer,
	}, nil
}

// Tag returns the formatter's locale.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Currency returns the ISO code, e.g. "BRL".
func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Format renders c as "R$ 1.234,56" for pt-BR/BRL or "US$ 1,234.56" for en/USD.
func (f *Formatter) Format(c Cents) string {
	whole, frac := int64(c)/100, int64(c)%100
	sign := ""
	if c < 0 {
		sign = "-"
		whole, frac = -whole, -frac
	}
	return sign + f.symbol + " " + f.printer.Sprintf("%d", whole) + f.decimal + fmt.Sprintf("%02d", frac)
}

// decimalSeparator reads the locale's separator off a printed fraction.
func decimalSeparator(p *message.Printer) string {
	sep := strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 0.5), "0"), "5")
	if sep == "" {
		return "."
	}
	return sep
}
