package tui

import (
	"strings"
	"testing"

	"github.com/minjipark/encore/internal/checkout"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

func newTestMembershipModel() membershipModel {
	m := newMembershipModel(nil, nil)
	m.width = 80
	m.height = 24
	m.loading = false
	return m
}

func testPlans() []domain.Plan {
	return []domain.Plan{
		{Code: "MEMBERSHIP_M", Name: "monthly", Months: 1, Price: 9900, AutoRenew: true},
		{Code: "MEMBERSHIP_Y", Name: "annual", Months: 12, Price: 99000},
	}
}

func TestMembershipRendersPlans(t *testing.T) {
	m := newTestMembershipModel()
	m, _ = m.Update(plansLoadedMsg{plans: testPlans()})

	view := m.View()
	for _, want := range []string{"monthly", "annual", "9,900won", "auto-renew"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in plans view, got:\n%s", want, view)
		}
	}
}

func TestMembershipSubmitDisabledUntilBuyerReady(t *testing.T) {
	m := newTestMembershipModel()
	m, _ = m.Update(plansLoadedMsg{plans: testPlans()})
	m, _ = m.Update(keyPress("enter")) // into buyer form
	if m.stage != stageBuyer {
		t.Fatalf("expected buyer stage, got %d", m.stage)
	}

	// Incomplete buyer: enter must not submit.
	m.buyer = checkout.BuyerInfo{Name: "Kim Minji", BirthDate: "1994-5-17", Phone: "01012345678"}
	m, cmd := m.Update(keyPress("enter"))
	if cmd != nil || m.submitting {
		t.Error("malformed birth date must block submission")
	}
	if !strings.Contains(m.View(), "disabled") {
		t.Errorf("expected disabled hint, got:\n%s", m.View())
	}

	// Complete buyer: submit goes in flight.
	m.buyer.BirthDate = "1994-05-17"
	m, cmd = m.Update(keyPress("enter"))
	if cmd == nil || !m.submitting {
		t.Error("valid buyer must submit")
	}
}

func TestMembershipInFlightSubmitIgnoresKeys(t *testing.T) {
	m := newTestMembershipModel()
	m, _ = m.Update(plansLoadedMsg{plans: testPlans()})
	m, _ = m.Update(keyPress("enter"))
	m.submitting = true

	before := m.buyer
	m, cmd := m.Update(keyPress("x"))
	if cmd != nil {
		t.Error("keys during an in-flight submit must be ignored")
	}
	if m.buyer != before {
		t.Error("form must not change during an in-flight submit")
	}
}

func TestMembershipRedirectStage(t *testing.T) {
	m := newTestMembershipModel()
	m, _ = m.Update(plansLoadedMsg{plans: testPlans()})
	m.stage = stageBuyer

	m, _ = m.Update(orderSubmittedMsg{result: &checkout.Result{
		OrderNo:     "ORD-1001",
		Amount:      9900,
		RedirectURL: "https://pay.example/redir",
	}})
	if m.stage != stageRedirect {
		t.Fatalf("expected redirect stage, got %d", m.stage)
	}
	view := m.View()
	if !strings.Contains(view, "ORD-1001") || !strings.Contains(view, "pay.example") {
		t.Errorf("expected order number and redirect URL, got:\n%s", view)
	}
}

func TestMembershipNoRedirectFetchesOrderFromServer(t *testing.T) {
	m := newTestMembershipModel()
	m.stage = stageBuyer

	m, cmd := m.Update(orderSubmittedMsg{result: &checkout.Result{OrderNo: "ORD-2", Amount: 9900}})
	if m.stage != stageDone {
		t.Fatalf("orders without a redirect show the order detail, got stage %d", m.stage)
	}
	if cmd == nil {
		t.Fatal("a redirect-less order must be fetched from the server")
	}

	// Until the fetch lands the view shows only what the server returned;
	// no status is assumed.
	view := m.View()
	if !strings.Contains(view, "ORD-2") {
		t.Errorf("expected order number, got:\n%s", view)
	}
	if strings.Contains(view, "PAID") {
		t.Errorf("status must come from the server, not the client, got:\n%s", view)
	}

	m, _ = m.Update(orderFetchedMsg{order: &domain.Order{
		OrderNo: "ORD-2",
		Status:  domain.OrderStatusPending,
		Amount:  9900,
	}})
	view = m.View()
	if !strings.Contains(view, domain.OrderStatusPending) {
		t.Errorf("expected the server-reported status, got:\n%s", view)
	}
}

func TestMembershipOrderFetchFailureShowsError(t *testing.T) {
	m := newTestMembershipModel()
	m.stage = stageBuyer

	m, _ = m.Update(orderSubmittedMsg{result: &checkout.Result{OrderNo: "ORD-3", Amount: 9900}})
	m, _ = m.Update(orderFetchedMsg{err: &api.Error{Status: 500, Message: "order lookup failed"}})

	view := m.View()
	if !strings.Contains(view, "order lookup failed") {
		t.Errorf("fetch error should surface verbatim, got:\n%s", view)
	}
	if strings.Contains(view, "PAID") {
		t.Errorf("no status may be shown when the fetch fails, got:\n%s", view)
	}
}

func TestMembershipSubmitFailureKeepsFormEditable(t *testing.T) {
	m := newTestMembershipModel()
	m.stage = stageBuyer
	m.submitting = true

	m, _ = m.Update(orderSubmittedMsg{err: &api.Error{Status: 500, Message: "plan closed"}})
	if m.stage != stageBuyer {
		t.Error("a failed submit must keep the buyer form on screen")
	}
	if m.submitting {
		t.Error("submit flag must reset on failure")
	}
	if !strings.Contains(m.View(), "plan closed") {
		t.Errorf("server message should surface verbatim, got:\n%s", m.View())
	}
}

func TestMembershipConfirmFailureIsTerminal(t *testing.T) {
	m := newTestMembershipModel()
	m.stage = stageConfirm
	m.confirming = true

	m, _ = m.Update(paymentConfirmedMsg{err: &api.Error{Status: 400, Message: "amount mismatch"}})
	if m.stage != stageDone {
		t.Error("confirmation failure must land on the terminal failed display")
	}
	view := m.View()
	if !strings.Contains(view, "payment failed") || !strings.Contains(view, "amount mismatch") {
		t.Errorf("expected failed display with server message, got:\n%s", view)
	}
}

func TestMembershipConfirmSuccessShowsOrder(t *testing.T) {
	m := newTestMembershipModel()
	m.stage = stageConfirm
	m.confirming = true

	m, _ = m.Update(paymentConfirmedMsg{order: &domain.Order{
		OrderNo: "ORD-1001", Status: domain.OrderStatusPaid, Amount: 9900,
	}})
	if m.stage != stageDone {
		t.Fatalf("expected done stage, got %d", m.stage)
	}
	view := m.View()
	if !strings.Contains(view, "PAID") || !strings.Contains(view, "ORD-1001") {
		t.Errorf("expected confirmed order, got:\n%s", view)
	}
}

func TestMembershipEmptySelectionBlocks(t *testing.T) {
	m := newTestMembershipModel()
	m, _ = m.Update(plansLoadedMsg{plans: nil})

	m, _ = m.Update(keyPress("enter"))
	if m.stage != stagePlans {
		t.Error("no plan on offer means nothing to subscribe to")
	}
}
