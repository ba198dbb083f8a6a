package enums

// ContractState is the lifecycle position derived from a contract's payment flags.
type ContractState string

const (
	ContractStateAwaitingDeposit      ContractState = "AWAITING_DEPOSIT"
	ContractStateAwaitingFinalPayment ContractState = "AWAITING_FINAL_PAYMENT"
	ContractStateAwaitingEvent        ContractState = "AWAITING_EVENT"
	ContractStateCompleted            ContractState = "COMPLETED"
)

var validContractStates = []ContractState{
	ContractStateAwaitingDeposit,
	ContractStateAwaitingFinalPayment,
	ContractStateAwaitingEvent,
	ContractStateCompleted,
}

// String implements fmt.Stringer.
func (s ContractState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ContractState.
func (s ContractState) IsValid() bool {
	for _, candidate := range validContractStates {
		if candidate == s {
			return true
		}
	}
	return false
}

// StatusIndicator is the visual marker shown next to a contract status.
type StatusIndicator string

const (
	StatusIndicatorSuccess StatusIndicator = "success"
	StatusIndicatorPending StatusIndicator = "pending"
	StatusIndicatorPartial StatusIndicator = "partial"
	StatusIndicatorEmpty   StatusIndicator = "empty"
)

var indicatorGlyphs = map[StatusIndicator]string{
	StatusIndicatorSuccess: "✓",
	StatusIndicatorPending: "◷",
	StatusIndicatorPartial: "◐",
	StatusIndicatorEmpty:   "✗",
}

// String implements fmt.Stringer.
func (i StatusIndicator) String() string {
	return string(i)
}

// Glyph returns the display symbol for the indicator.
func (i StatusIndicator) Glyph() string {
	return indicatorGlyphs[i]
}

// StatusColor is the display color paired with an indicator.
type StatusColor string

const (
	StatusColorGreen  StatusColor = "green"
	StatusColorBlue   StatusColor = "blue"
	StatusColorYellow StatusColor = "yellow"
	StatusColorRed    StatusColor = "red"
)

// String implements fmt.Stringer.
func (c StatusColor) String() string {
	return string(c)
}
