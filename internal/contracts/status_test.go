package contracts

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/lumenfoto/studio-backend/pkg/enums"
)

func TestResolvePriorityOrder(t *testing.T) {
	cases := []struct {
		deposit, final, completed bool
		want                      enums.ContractState
	}{
		{false, false, false, enums.ContractStateAwaitingDeposit},
		{true, false, false, enums.ContractStateAwaitingFinalPayment},
		{false, true, false, enums.ContractStateAwaitingEvent},
		{true, true, false, enums.ContractStateAwaitingEvent},
		{false, false, true, enums.ContractStateCompleted},
		{true, false, true, enums.ContractStateCompleted},
		{false, true, true, enums.ContractStateCompleted},
		{true, true, true, enums.ContractStateCompleted},
	}
	for _, tc := range cases {
		got := Resolve(Contract{DepositPaid: tc.deposit, FinalPaymentPaid: tc.final, EventCompleted: tc.completed})
		assert.Equal(t, tc.want, got.State, "deposit=%v final=%v completed=%v", tc.deposit, tc.final, tc.completed)
	}
}

func TestResolveDisplayAttributes(t *testing.T) {
	cases := []struct {
		contract  Contract
		label     string
		indicator enums.StatusIndicator
		color     enums.StatusColor
	}{
		{Contract{EventCompleted: true}, "Event Completed", enums.StatusIndicatorSuccess, enums.StatusColorGreen},
		{Contract{FinalPaymentPaid: true}, "Awaiting Event", enums.StatusIndicatorPending, enums.StatusColorBlue},
		{Contract{DepositPaid: true}, "Awaiting Final Payment", enums.StatusIndicatorPartial, enums.StatusColorYellow},
		{Contract{}, "Awaiting Deposit", enums.StatusIndicatorEmpty, enums.StatusColorRed},
	}
	for _, tc := range cases {
		got := Resolve(tc.contract)
		assert.Equal(t, tc.label, got.Label)
		assert.Equal(t, tc.indicator, got.Indicator)
		assert.Equal(t, tc.color, got.Color)
		assert.Equal(t, tc.indicator.Glyph(), got.Glyph)
	}
}

func TestResolveCompletionDominatesMissingDeposit(t *testing.T) {
	got := Resolve(Contract{EventCompleted: true, DepositPaid: false})
	assert.Equal(t, enums.ContractStateCompleted, got.State)
}

func TestResolveProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("always yields a known state", prop.ForAll(
		func(deposit, final, completed bool) bool {
			return Resolve(Contract{DepositPaid: deposit, FinalPaymentPaid: final, EventCompleted: completed}).State.IsValid()
		},
		gen.Bool(), gen.Bool(), gen.Bool(),
	))

	properties.Property("ignores every field except the three flags", prop.ForAll(
		func(deposit, final, completed bool, name string, total int64) bool {
			bare := Contract{DepositPaid: deposit, FinalPaymentPaid: final, EventCompleted: completed}
			dressed := bare
			dressed.ClientName = name
			dressed.TotalAmount = 0
			if total > 0 {
				dressed.TotalAmount = 1
			}
			return Resolve(bare) == Resolve(dressed)
		},
		gen.Bool(), gen.Bool(), gen.Bool(), gen.AlphaString(), gen.Int64(),
	))

	properties.TestingRun(t)
}
