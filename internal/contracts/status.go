package contracts

import "github.com/lumenfoto/studio-backend/pkg/enums"

// Status is the display classification of a contract's payment progress.
type Status struct {
	State     enums.ContractState   `json:"state"`
	Label     string                `json:"label"`
	Indicator enums.StatusIndicator `json:"indicator"`
	Glyph     string                `json:"glyph"`
	Color     enums.StatusColor     `json:"color"`
}

var (
	statusCompleted = newStatus(enums.ContractStateCompleted, "Event Completed", enums.StatusIndicatorSuccess, enums.StatusColorGreen)
	statusEvent     = newStatus(enums.ContractStateAwaitingEvent, "Awaiting Event", enums.StatusIndicatorPending, enums.StatusColorBlue)
	statusFinal     = newStatus(enums.ContractStateAwaitingFinalPayment, "Awaiting Final Payment", enums.StatusIndicatorPartial, enums.StatusColorYellow)
	statusDeposit   = newStatus(enums.ContractStateAwaitingDeposit, "Awaiting Deposit", enums.StatusIndicatorEmpty, enums.StatusColorRed)
)

func newStatus(state enums.ContractState, label string, indicator enums.StatusIndicator, color enums.StatusColor) Status {
	return Status{State: state, Label: label, Indicator: indicator, Glyph: indicator.Glyph(), Color: color}
}

// Resolve classifies a contract by the first matching flag in the order
// completed, final payment, deposit. Inconsistent flag combinations are
// reported as-is: completion dominates even without recorded payments.
func Resolve(c Contract) Status {
	switch {
	case c.EventCompleted:
		return statusCompleted
	case c.FinalPaymentPaid:
		return statusEvent
	case c.DepositPaid:
		return statusFinal
	default:
		return statusDeposit
	}
}
