package checkout

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// Submission failures surfaced to the membership view.
var (
	// ErrNoPlan blocks submission when resolution failed closed.
	ErrNoPlan = errors.New("no membership plan selected")
	// ErrBuyerNotReady blocks submission while the buyer gate is unsatisfied.
	ErrBuyerNotReady = errors.New("buyer information incomplete")
)

// OrderClient is the slice of the API client the flow needs.
type OrderClient interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) (*api.OrderCreated, error)
	ConfirmPayment(ctx context.Context, req api.ConfirmPaymentRequest) (*domain.Order, error)
}

// Flow drives one checkout from selection to payment hand-off. It holds no
// server state; a failed submit leaves the form editable and assumes no
// partial order exists.
type Flow struct {
	client OrderClient
	logger *slog.Logger
}

// New creates a checkout flow.
func New(client OrderClient, logger *slog.Logger) *Flow {
	return &Flow{client: client, logger: logger}
}

// Result is the outcome of a successful order creation. A non-empty
// RedirectURL means the payment provider takes over; otherwise the caller
// navigates to its local order-detail view by OrderNo.
type Result struct {
	OrderNo     string
	Amount      int64
	RedirectURL string
}

// Submit validates both gates and posts the order exactly once. The
// correlation ID is generated client-side and echoed back by the payment
// provider on the return URL.
func (f *Flow) Submit(ctx context.Context, sel Selection, buyer BuyerInfo) (*Result, error) {
	if !sel.Resolved() {
		return nil, ErrNoPlan
	}
	if err := buyer.Validate(); err != nil {
		return nil, ErrBuyerNotReady
	}

	req := api.CreateOrderRequest{
		PlanCode:      sel.PlanCode,
		Months:        sel.Months,
		AutoRenew:     sel.AutoRenew,
		BuyerName:     buyer.Name,
		BuyerBirth:    buyer.BirthDate,
		BuyerPhone:    buyer.Phone,
		CorrelationID: uuid.NewString(),
	}
	created, err := f.client.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	f.logger.Info("order created",
		slog.String("orderNo", created.OrderNo),
		slog.String("planCode", sel.PlanCode),
		slog.Bool("redirect", created.RedirectURL != ""))

	return &Result{
		OrderNo:     created.OrderNo,
		Amount:      created.Amount,
		RedirectURL: created.RedirectURL,
	}, nil
}
