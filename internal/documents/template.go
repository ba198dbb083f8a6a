package documents

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/lumenfoto/studio-backend/internal/contracts"
	"github.com/lumenfoto/studio-backend/pkg/enums"
	"github.com/lumenfoto/studio-backend/pkg/money"
)

//go:embed templates/contract.html
var templateFS embed.FS

var contractTemplate = template.Must(template.ParseFS(templateFS, "templates/contract.html"))

// Business identifies the studio on every document.
type Business struct {
	Name     string
	Slug     string
	Document string
	City     string
}

type labels struct {
	Title, Document                                   string
	ClientSection, Name, Email, Phone, Address        string
	EventSection, EventType, EventDate, EventLocation string
	PaymentSection, PaymentMethod, TravelFee          string
	Deposit, Remainder, Total, Status                 string
}

var labelSets = map[string]labels{
	"pt": {
		Title: "Contrato de Prestação de Serviços Fotográficos", Document: "CNPJ",
		ClientSection: "Contratante", Name: "Nome", Email: "E-mail", Phone: "Telefone", Address: "Endereço",
		EventSection: "Evento", EventType: "Tipo de evento", EventDate: "Data", EventLocation: "Local",
		PaymentSection: "Pagamento", PaymentMethod: "Forma de pagamento", TravelFee: "Taxa de deslocamento",
		Deposit:   fmt.Sprintf("Sinal (%d%%)", money.DepositPercent),
		Remainder: fmt.Sprintf("Saldo (%d%%)", 100-money.DepositPercent),
		Total:     "Valor total", Status: "Situação",
	},
	"en": {
		Title: "Photography Services Agreement", Document: "Tax ID",
		ClientSection: "Client", Name: "Name", Email: "Email", Phone: "Phone", Address: "Address",
		EventSection: "Event", EventType: "Event type", EventDate: "Date", EventLocation: "Location",
		PaymentSection: "Payment", PaymentMethod: "Payment method", TravelFee: "Travel fee",
		Deposit:   fmt.Sprintf("Deposit (%d%%)", money.DepositPercent),
		Remainder: fmt.Sprintf("Balance (%d%%)", 100-money.DepositPercent),
		Total:     "Total", Status: "Status",
	},
}

var statusColors = map[enums.StatusColor]string{
	enums.StatusColorGreen:  "#2e7d32",
	enums.StatusColorBlue:   "#1565c0",
	enums.StatusColorYellow: "#f9a825",
	enums.StatusColorRed:    "#c62828",
}

type documentData struct {
	Lang         string
	L            labels
	Business     Business
	Client       clientData
	Event        eventData
	Payment      paymentData
	StatusLabel  string
	StatusColor  template.CSS
	ContractDate string
}

type clientData struct {
	Name, Email, CPF, Phone, Address string
}

type eventData struct {
	Type, Date, Time, Location string
}

type paymentData struct {
	Method        string
	Total         string
	Deposit       string
	Remainder     string
	TravelFee     string
	ShowTravelFee bool
}

// Assemble renders the contract summary HTML. The travel fee line appears only
// when the contract carries a positive fee.
func Assemble(f *Formatter, business Business, c contracts.Contract) (string, error) {
	deposit, remainder, err := money.SplitDeposit(c.TotalAmount)
	if err != nil {
		return "", fmt.Errorf("split total: %w", err)
	}
	status := contracts.Resolve(c)

	data := documentData{
		Lang:     f.Language(),
		L:        labelSets[f.Language()],
		Business: business,
		Client: clientData{
			Name:    c.ClientName,
			Email:   c.ClientEmail,
			CPF:     c.ClientCPF,
			Phone:   c.ClientPhone,
			Address: c.ClientAddress,
		},
		Event: eventData{
			Type:     c.EventType,
			Date:     f.Date(c.EventDate),
			Time:     c.EventTime,
			Location: c.EventLocation,
		},
		Payment: paymentData{
			Method:        f.PaymentMethod(c.PaymentMethod),
			Total:         f.Money(c.TotalAmount),
			Deposit:       f.Money(deposit),
			Remainder:     f.Money(remainder),
			TravelFee:     f.Money(c.TravelFee),
			ShowTravelFee: c.HasTravelFee(),
		},
		StatusLabel:  status.Label,
		StatusColor:  template.CSS(statusColors[status.Color]),
		ContractDate: f.Date(c.ContractDate),
	}

	var buf bytes.Buffer
	if err := contractTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute contract template: %w", err)
	}
	return buf.String(), nil
}
