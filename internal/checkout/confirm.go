package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// Return URL parse failures. Each short-circuits to the failed display
// without ever calling the confirmation endpoint.
var (
	ErrMissingPaymentKey = errors.New("return URL missing paymentKey")
	ErrMissingOrderID    = errors.New("return URL missing orderId")
	ErrBadAmount         = errors.New("return URL amount is not a number")
)

// ParseReturn extracts the provider-issued correlation fields from the
// payment return URL's query string.
func ParseReturn(rawURL string) (api.ConfirmPaymentRequest, error) {
	var req api.ConfirmPaymentRequest
	u, err := url.Parse(rawURL)
	if err != nil {
		return req, err
	}
	q := u.Query()

	req.PaymentKey = q.Get("paymentKey")
	if req.PaymentKey == "" {
		return api.ConfirmPaymentRequest{}, ErrMissingPaymentKey
	}
	req.OrderID = q.Get("orderId")
	if req.OrderID == "" {
		return api.ConfirmPaymentRequest{}, ErrMissingOrderID
	}
	req.Amount, err = strconv.ParseInt(q.Get("amount"), 10, 64)
	if err != nil {
		return api.ConfirmPaymentRequest{}, ErrBadAmount
	}
	return req, nil
}

// Confirm reconciles a provider return URL with the backend. It runs once
// per landing and transitions to a terminal confirmed or failed state; there
// is no polling and no retry on failure.
func (f *Flow) Confirm(ctx context.Context, returnURL string) (*domain.Order, error) {
	req, err := ParseReturn(returnURL)
	if err != nil {
		return nil, err
	}
	order, err := f.client.ConfirmPayment(ctx, req)
	if err != nil {
		return nil, err
	}
	f.logger.Info("payment confirmed",
		slog.String("orderNo", order.OrderNo),
		slog.String("status", order.Status))
	return order, nil
}
