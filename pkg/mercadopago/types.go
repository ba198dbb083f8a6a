package mercadopago

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Item is one checkout line.
type Item struct {
	ID          string          `json:"id,omitempty"`
	Title       string          `json:"title" validate:"required"`
	Description string          `json:"description,omitempty"`
	PictureURL  string          `json:"picture_url,omitempty"`
	CategoryID  string          `json:"category_id,omitempty"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CurrencyID  string          `json:"currency_id,omitempty"`
}

// Payer identifies the buyer.
type Payer struct {
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *Phone `json:"phone,omitempty"`
}

type Phone struct {
	AreaCode string `json:"area_code,omitempty"`
	Number   string `json:"number,omitempty"`
}

// BackURLs are the post-checkout redirect targets.
type BackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// Preference is the checkout preference request body.
type Preference struct {
	Items               []Item          `json:"items" validate:"required,min=1,dive"`
	Payer               *Payer          `json:"payer,omitempty"`
	BackURLs            *BackURLs       `json:"back_urls,omitempty"`
	AutoReturn          string          `json:"auto_return,omitempty"`
	ExternalReference   string          `json:"external_reference,omitempty"`
	NotificationURL     string          `json:"notification_url,omitempty"`
	StatementDescriptor string          `json:"statement_descriptor,omitempty"`
	Metadata            map[string]any  `json:"metadata,omitempty"`
	PaymentMethods      json.RawMessage `json:"payment_methods,omitempty"`
}

// PreferenceResult is what the checkout flow needs to redirect the payer.
type PreferenceResult struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// wireItem sends unit_price as a JSON number; decimal marshals to a quoted string by default.
type wireItem struct {
	Item
	UnitPrice json.Number `json:"unit_price"`
}

type wirePreference struct {
	Preference
	Items []wireItem `json:"items"`
}

func toWire(p Preference) wirePreference {
	items := make([]wireItem, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, wireItem{Item: item, UnitPrice: json.Number(item.UnitPrice.String())})
	}
	return wirePreference{Preference: p, Items: items}
}

type apiErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
	Cause   []struct {
		Code        any    `json:"code"`
		Description string `json:"description"`
	} `json:"cause"`
}
