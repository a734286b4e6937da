package api

import (
	"context"
	"fmt"

	"github.com/minjipark/encore/pkg/domain"
)

// ListPlans returns the membership plans on offer.
func (c *Client) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	var plans []domain.Plan
	if err := c.get(ctx, "/api/plans", &plans); err != nil {
		return nil, fmt.Errorf("api.ListPlans: %w", err)
	}
	return plans, nil
}

// CreateOrderRequest is the one-shot order-creation payload: the resolved
// plan selection plus buyer fields. No client-computed price is ever sent;
// the backend computes the authoritative amount.
type CreateOrderRequest struct {
	PlanCode      string `json:"planCode"`
	Months        int    `json:"months"`
	AutoRenew     bool   `json:"autoRenew"`
	BuyerName     string `json:"buyerName"`
	BuyerBirth    string `json:"buyerBirth"` // YYYY-MM-DD
	BuyerPhone    string `json:"buyerPhone"` // digits only
	CorrelationID string `json:"correlationId"`
}

// OrderCreated is the backend's answer to order creation. A non-empty
// RedirectURL hands the member off to the payment provider; otherwise the
// client navigates to its own order-detail view by OrderNo.
type OrderCreated struct {
	OrderNo     string `json:"orderNo"`
	Amount      int64  `json:"amount"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// CreateOrder posts a membership order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderCreated, error) {
	var created OrderCreated
	if err := c.post(ctx, "/api/orders", req, &created); err != nil {
		return nil, fmt.Errorf("api.CreateOrder: %w", err)
	}
	return &created, nil
}

// ConfirmPaymentRequest carries the provider-issued correlation fields
// extracted from the payment return URL.
type ConfirmPaymentRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int64  `json:"amount"`
}

// ConfirmPayment reconciles a provider callback with the backend. It is
// called exactly once per landing; the client never retries confirmation.
func (c *Client) ConfirmPayment(ctx context.Context, req ConfirmPaymentRequest) (*domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/api/orders/confirm", req, &order); err != nil {
		return nil, fmt.Errorf("api.ConfirmPayment: %w", err)
	}
	return &order, nil
}
