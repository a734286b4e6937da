package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minjipark/encore/internal/browser"
	"github.com/minjipark/encore/internal/checkout"
	"github.com/minjipark/encore/pkg/api"
	"github.com/minjipark/encore/pkg/domain"
)

// -- messages --

type plansLoadedMsg struct {
	plans []domain.Plan
	err   error
}

type orderSubmittedMsg struct {
	result *checkout.Result
	err    error
}

type paymentConfirmedMsg struct {
	order *domain.Order
	err   error
}

type orderFetchedMsg struct {
	order *domain.Order
	err   error
}

// -- model --

type membershipStage int

const (
	stagePlans membershipStage = iota
	stageBuyer
	stageRedirect
	stageConfirm
	stageDone
)

// buyer form field indexes
const (
	fieldBuyerName = iota
	fieldBuyerBirth
	fieldBuyerPhone
	buyerFieldCount
)

type membershipModel struct {
	client *api.Client
	flow   *checkout.Flow

	stage   membershipStage
	plans   []domain.Plan
	cursor  int
	loading bool
	errMsg  string

	buyer      checkout.BuyerInfo
	buyerField int

	submitting bool
	result     *checkout.Result

	confirmInput string
	confirming   bool
	order        *domain.Order
	confirmErr   string

	width  int
	height int
}

func newMembershipModel(c *api.Client, flow *checkout.Flow) membershipModel {
	return membershipModel{client: c, flow: flow, loading: true}
}

func (m membershipModel) Init() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		plans, err := c.ListPlans(context.Background())
		return plansLoadedMsg{plans: plans, err: err}
	}
}

// selection resolves the highlighted plan. The plan code path is always
// explicit here; the pay-type fallback only matters for deep links handled
// in cmd.
func (m membershipModel) selection() checkout.Selection {
	if len(m.plans) == 0 || m.cursor >= len(m.plans) {
		return checkout.Selection{}
	}
	p := m.plans[m.cursor]
	return checkout.Resolve(p.Code, "", p.Months, p.AutoRenew)
}

func (m membershipModel) submit() tea.Cmd {
	flow := m.flow
	sel := m.selection()
	buyer := m.buyer
	return func() tea.Msg {
		result, err := flow.Submit(context.Background(), sel, buyer)
		return orderSubmittedMsg{result: result, err: err}
	}
}

func (m membershipModel) fetchOrder(orderNo string) tea.Cmd {
	c := m.client
	return func() tea.Msg {
		order, err := c.GetOrder(context.Background(), orderNo)
		return orderFetchedMsg{order: order, err: err}
	}
}

func (m membershipModel) confirm() tea.Cmd {
	flow := m.flow
	raw := strings.TrimSpace(m.confirmInput)
	return func() tea.Msg {
		order, err := flow.Confirm(context.Background(), raw)
		return paymentConfirmedMsg{order: order, err: err}
	}
}

func (m membershipModel) isEditing() bool {
	return m.stage == stageBuyer || m.stage == stageConfirm
}

func (m membershipModel) Update(msg tea.Msg) (membershipModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case plansLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load plans")
			return m, authExpired(msg.err)
		}
		m.plans = msg.plans
		m.errMsg = ""

	case orderSubmittedMsg:
		m.submitting = false
		if msg.err != nil {
			// A failed submit leaves the form editable; no partial order
			// is assumed to exist.
			m.errMsg = describeErr(msg.err, "failed to create order")
			return m, authExpired(msg.err)
		}
		m.result = msg.result
		m.errMsg = ""
		if m.result.RedirectURL != "" {
			m.stage = stageRedirect
			url := m.result.RedirectURL
			return m, func() tea.Msg {
				_ = browser.Open(url)
				return nil
			}
		}
		// No payment step was required. The order's state is whatever the
		// server says it is, so fetch it rather than guess.
		m.stage = stageDone
		m.order = nil
		return m, m.fetchOrder(m.result.OrderNo)

	case orderFetchedMsg:
		if msg.err != nil {
			m.errMsg = describeErr(msg.err, "failed to load order")
			return m, authExpired(msg.err)
		}
		m.order = msg.order
		m.errMsg = ""

	case paymentConfirmedMsg:
		m.confirming = false
		if msg.err != nil {
			// Terminal failed display. Confirmation is never retried.
			m.confirmErr = describeErr(msg.err, "payment confirmation failed")
			m.stage = stageDone
			return m, authExpired(msg.err)
		}
		m.order = msg.order
		m.stage = stageDone

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m membershipModel) handleKey(msg tea.KeyMsg) (membershipModel, tea.Cmd) {
	switch m.stage {
	case stagePlans:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if !m.selection().Resolved() {
				m.errMsg = "select a plan first"
				return m, nil
			}
			m.stage = stageBuyer
			m.buyerField = fieldBuyerName
			m.errMsg = ""
		}

	case stageBuyer:
		if m.submitting {
			return m, nil // one order submission at a time
		}
		switch msg.String() {
		case "esc":
			m.stage = stagePlans
			m.errMsg = ""
		case "tab", "down":
			m.buyerField = (m.buyerField + 1) % buyerFieldCount
		case "shift+tab", "up":
			m.buyerField = (m.buyerField + buyerFieldCount - 1) % buyerFieldCount
		case "enter":
			if !m.buyer.Ready() {
				m.errMsg = "fill in name, birth date (YYYY-MM-DD) and phone"
				return m, nil
			}
			m.submitting = true
			m.errMsg = ""
			return m, m.submit()
		default:
			switch m.buyerField {
			case fieldBuyerName:
				m.buyer.Name = editRune(m.buyer.Name, msg.String())
			case fieldBuyerBirth:
				m.buyer.BirthDate = editRune(m.buyer.BirthDate, msg.String())
			case fieldBuyerPhone:
				m.buyer.Phone = editRune(m.buyer.Phone, msg.String())
			}
		}

	case stageRedirect:
		switch msg.String() {
		case "y":
			if m.result != nil {
				_ = clipboard.WriteAll(m.result.RedirectURL)
			}
		case "enter", "v":
			m.stage = stageConfirm
			m.confirmInput = ""
			m.confirmErr = ""
		case "esc":
			m.stage = stagePlans
			m.result = nil
		}

	case stageConfirm:
		if m.confirming {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			m.stage = stageRedirect
		case "ctrl+v":
			if pasted, err := clipboard.ReadAll(); err == nil {
				m.confirmInput += pasted
			}
		case "enter":
			if strings.TrimSpace(m.confirmInput) == "" {
				return m, nil
			}
			m.confirming = true
			return m, m.confirm()
		default:
			m.confirmInput = editRune(m.confirmInput, msg.String())
		}

	case stageDone:
		switch msg.String() {
		case "esc", "enter":
			m.stage = stagePlans
			m.result = nil
			m.order = nil
			m.confirmErr = ""
		}
	}
	return m, nil
}

func (m membershipModel) View() string {
	var b strings.Builder

	if m.errMsg != "" {
		b.WriteString(" " + errStyle.Render(m.errMsg) + "\n\n")
	}

	switch m.stage {
	case stagePlans:
		if m.loading {
			b.WriteString(" " + dimStyle.Render("loading...") + "\n")
			break
		}
		if len(m.plans) == 0 {
			b.WriteString(" " + dimStyle.Render("no plans on offer") + "\n")
			break
		}
		for i, p := range m.plans {
			cursor := " "
			style := normalStyle
			if i == m.cursor {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			row := fmt.Sprintf(" %s %s  %s", cursor,
				style.Render(truncStr(p.Name, 32)),
				priceStyle.Render(formatWon(p.Price)))
			if p.AutoRenew {
				row += "  " + badgeStyle.Render("auto-renew")
			}
			row += "  " + metaStyle.Render(fmt.Sprintf("%d mo", p.Months))
			b.WriteString(row + "\n")
		}

	case stageBuyer:
		b.WriteString(" " + accentStyle.Render("buyer information") + "\n\n")
		fields := []struct {
			label string
			value string
			hint  string
		}{
			{"name:", m.buyer.Name, ""},
			{"birth:", m.buyer.BirthDate, "YYYY-MM-DD"},
			{"phone:", m.buyer.Phone, "digits only"},
		}
		for i, f := range fields {
			cursor := " "
			style := normalStyle
			if i == m.buyerField {
				cursor = accentStyle.Render("▸")
				style = selectedStyle
			}
			val := f.value
			if val == "" && f.hint != "" {
				val = inputPlaceholderStyle.Render(f.hint)
			} else {
				val = style.Render(val)
			}
			b.WriteString(fmt.Sprintf(" %s %s %s\n", cursor, helpLabelStyle.Render(fmt.Sprintf("%-7s", f.label)), val))
		}
		b.WriteString("\n")
		switch {
		case m.submitting:
			b.WriteString(" " + dimStyle.Render("creating order...") + "\n")
		case m.buyer.Ready():
			b.WriteString(" " + okStyle.Render("ready") + dimStyle.Render(" · enter to pay") + "\n")
		default:
			b.WriteString(" " + dimStyle.Render("submit disabled until all fields are valid") + "\n")
		}

	case stageRedirect:
		b.WriteString(" " + okStyle.Render("order "+m.result.OrderNo+" created") + "  " + priceStyle.Render(formatWon(m.result.Amount)) + "\n\n")
		b.WriteString(" " + normalStyle.Render("complete payment in your browser:") + "\n")
		b.WriteString(" " + dimStyle.Render(truncStr(m.result.RedirectURL, 76)) + "\n\n")
		b.WriteString(" " + metaStyle.Render("then paste the return URL here to confirm") + "\n")

	case stageConfirm:
		b.WriteString(" " + accentStyle.Render("paste payment return URL") + "\n\n")
		b.WriteString(" " + accentStyle.Render(">") + " " + normalStyle.Render(truncStr(m.confirmInput, 72)) + accentStyle.Render("█") + "\n")
		if m.confirming {
			b.WriteString("\n " + dimStyle.Render("confirming...") + "\n")
		}

	case stageDone:
		if m.confirmErr != "" {
			b.WriteString(" " + errStyle.Render("payment failed: "+m.confirmErr) + "\n")
			break
		}
		if m.order == nil {
			if m.result != nil {
				b.WriteString(" " + okStyle.Render("order "+m.result.OrderNo+" created") + "  " + priceStyle.Render(formatWon(m.result.Amount)) + "\n")
			}
			b.WriteString(" " + dimStyle.Render("loading order...") + "\n")
			break
		}
		o := m.order
		b.WriteString(" " + statusStyle(o.Status).Render(o.Status) + "  " + selectedStyle.Render("order "+o.OrderNo) + "\n")
		b.WriteString(" " + priceStyle.Render(formatWon(o.Amount)) + "\n")
		if o.PlanCode != "" {
			b.WriteString(" " + metaStyle.Render(fmt.Sprintf("%s · %d mo", o.PlanCode, o.Months)) + "\n")
		}
	}
	return b.String()
}

func (m membershipModel) helpKeys() string {
	switch m.stage {
	case stagePlans:
		return helpEntry("j/k", "nav") + "  " + helpEntry("enter", "subscribe")
	case stageBuyer:
		return helpEntry("tab", "field") + "  " + helpEntry("enter", "pay") + "  " + helpEntry("esc", "back")
	case stageRedirect:
		return helpEntry("y", "copy url") + "  " + helpEntry("enter", "paste return url") + "  " + helpEntry("esc", "cancel")
	case stageConfirm:
		return helpEntry("ctrl+v", "paste") + "  " + helpEntry("enter", "confirm") + "  " + helpEntry("esc", "back")
	default:
		return helpEntry("esc", "plans")
	}
}
