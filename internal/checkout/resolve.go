// Package checkout implements the order orchestration flow: selection
// resolution, buyer-field gating, order creation with payment hand-off, and
// provider callback confirmation.
package checkout

import (
	"github.com/minjipark/encore/pkg/domain"
)

// Backend plan codes the pay-type table resolves to.
const (
	MonthlyPlanCode = "MEMBERSHIP_M"
	AnnualPlanCode  = "MEMBERSHIP_Y"
)

// Selection is the concrete plan choice an order is created from.
// A zero PlanCode means resolution failed and submission must stay blocked.
type Selection struct {
	PlanCode  string
	Months    int
	AutoRenew bool
}

// Resolved reports whether the selection may be submitted.
func (s Selection) Resolved() bool {
	return s.PlanCode != ""
}

// payTypeTable is the fixed pay-type to plan mapping.
var payTypeTable = map[string]Selection{
	domain.PayTypeRecurring: {PlanCode: MonthlyPlanCode, Months: 1, AutoRenew: true},
	domain.PayTypeYearly:    {PlanCode: AnnualPlanCode, Months: 12, AutoRenew: false},
	domain.PayTypeOneTime:   {PlanCode: MonthlyPlanCode, Months: 1, AutoRenew: false},
}

// Resolve normalizes incoming navigation parameters into a Selection. An
// explicit plan code wins; otherwise a recognized pay type maps through the
// fixed table. Anything else fails closed: empty plan code, no silent
// default plan.
func Resolve(planCode, payType string, months int, autoRenew bool) Selection {
	if planCode != "" {
		if months <= 0 {
			months = 1
		}
		return Selection{PlanCode: planCode, Months: months, AutoRenew: autoRenew}
	}
	if sel, ok := payTypeTable[payType]; ok {
		return sel
	}
	return Selection{}
}
