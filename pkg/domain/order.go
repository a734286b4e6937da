package domain

import "time"

// Plan is a membership pricing/term configuration owned by the backend.
type Plan struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Months    int    `json:"months"`
	Price     int64  `json:"price"`
	AutoRenew bool   `json:"autoRenew"`
}

// Order statuses reported by the backend.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFailed    = "FAILED"
	OrderStatusCancelled = "CANCELLED"
)

// Order mirrors a backend order. Amount is authoritative server state; the
// client displays it and never submits a self-computed charge.
type Order struct {
	OrderNo   string    `json:"orderNo"`
	Status    string    `json:"status"`
	PlanCode  string    `json:"planCode,omitempty"`
	Months    int       `json:"months,omitempty"`
	AutoRenew bool      `json:"autoRenew,omitempty"`
	ItemName  string    `json:"itemName,omitempty"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

var validPayTypes = map[string]bool{
	PayTypeOneTime:   true,
	PayTypeYearly:    true,
	PayTypeRecurring: true,
}

// ValidPayType reports whether s is a recognized pay-type enumeration.
func ValidPayType(s string) bool {
	return validPayTypes[s]
}
