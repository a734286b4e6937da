package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		planCode  string
		payType   string
		months    int
		autoRenew bool
		want      Selection
	}{
		{
			name:     "explicit plan code wins",
			planCode: "MEMBERSHIP_Y",
			payType:  "onetime",
			months:   12,
			want:     Selection{PlanCode: "MEMBERSHIP_Y", Months: 12},
		},
		{
			name:     "explicit plan code with zero months defaults to one",
			planCode: "MEMBERSHIP_M",
			want:     Selection{PlanCode: "MEMBERSHIP_M", Months: 1},
		},
		{
			name:    "recurring maps to monthly auto-renew",
			payType: "recurring",
			want:    Selection{PlanCode: MonthlyPlanCode, Months: 1, AutoRenew: true},
		},
		{
			name:    "yearly maps to annual without auto-renew",
			payType: "yearly",
			want:    Selection{PlanCode: AnnualPlanCode, Months: 12},
		},
		{
			name:    "onetime maps to single month",
			payType: "onetime",
			want:    Selection{PlanCode: MonthlyPlanCode, Months: 1},
		},
		{
			name:    "unknown pay type fails closed",
			payType: "lifetime",
			want:    Selection{},
		},
		{
			name: "nothing selected fails closed",
			want: Selection{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.planCode, tt.payType, tt.months, tt.autoRenew)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNeverSilentlyDefaults(t *testing.T) {
	// A garbage pay type must not fall back to any plan.
	sel := Resolve("", "not-a-pay-type", 3, true)
	assert.False(t, sel.Resolved())
	assert.Empty(t, sel.PlanCode)
}
