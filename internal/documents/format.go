package documents

import (
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/lumenfoto/studio-backend/pkg/enums"
	"github.com/lumenfoto/studio-backend/pkg/money"
)

// x/text has no calendar formatting, so long-form dates use these tables.
var monthNames = map[string][12]string{
	"pt": {"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
}

var paymentMethodLabels = map[string]map[enums.PaymentMethod]string{
	"pt": {
		enums.PaymentMethodCash:   "Dinheiro",
		enums.PaymentMethodCredit: "Cartão de crédito",
		enums.PaymentMethodPix:    "PIX",
	},
	"en": {
		enums.PaymentMethodCash:   "Cash",
		enums.PaymentMethodCredit: "Credit card",
		enums.PaymentMethodPix:    "PIX",
	},
}

// Formatter renders amounts, dates and enum labels for one locale.
type Formatter struct {
	money *money.Formatter
	lang  string
}

// NewFormatter builds a formatter for locale (e.g. "pt-BR") and an ISO currency code.
// Languages without tables fall back to Portuguese wording.
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	mf, err := money.NewFormatter(locale, currencyCode)
	if err != nil {
		return nil, err
	}
	return &Formatter{money: mf, lang: baseLanguage(mf.Tag())}, nil
}

func baseLanguage(tag language.Tag) string {
	base, _ := tag.Base()
	if _, ok := monthNames[base.String()]; ok {
		return base.String()
	}
	return "pt"
}

// Language returns the two-letter language used for wording.
func (f *Formatter) Language() string {
	return f.lang
}

// Money formats cents with the locale's separators and currency symbol.
func (f *Formatter) Money(c money.Cents) string {
	return f.money.Format(c)
}

// Date renders "15 de março de 2025" in Portuguese or "March 15, 2025" in English.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	month := monthNames[f.lang][t.Month()-1]
	if f.lang == "en" {
		return fmt.Sprintf("%s %d, %d", month, t.Day(), t.Year())
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), month, t.Year())
}

// PaymentMethod returns the display label for a payment method.
func (f *Formatter) PaymentMethod(m enums.PaymentMethod) string {
	if label, ok := paymentMethodLabels[f.lang][m]; ok {
		return label
	}
	return m.String()
}
